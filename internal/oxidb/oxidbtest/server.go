// Package oxidbtest runs an in-process server speaking the oxidb wire
// protocol, backed by memory. It implements the subset of commands the
// oxidb client issues.
package oxidbtest

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"net"
	"reflect"
	"sync"
	"testing"
)

// Server is a fake oxidb-server.
type Server struct {
	ln net.Listener

	mu          sync.Mutex
	collections map[string][]map[string]any
	nextID      float64
	failWith    string
	commands    []string
}

// NewServer starts a server on a loopback port and stops it when the test
// ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("oxidbtest: listen: %v", err)
	}
	s := &Server{ln: ln, collections: map[string][]map[string]any{}}
	go s.serve()
	t.Cleanup(func() { ln.Close() })
	return s
}

// Addr returns the "host:port" the server listens on.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// FailWith makes every subsequent command reply with an error message.
// An empty message restores normal operation.
func (s *Server) FailWith(msg string) {
	s.mu.Lock()
	s.failWith = msg
	s.mu.Unlock()
}

// Docs returns a copy of the documents stored in a collection.
func (s *Server) Docs(collection string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.collections[collection]))
	copy(out, s.collections[collection])
	return out
}

// Commands returns the command names received so far, in order.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *Server) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	for {
		lenBuf := make([]byte, 4)
		if _, err := io.ReadFull(conn, lenBuf); err != nil {
			return
		}
		payload := make([]byte, binary.LittleEndian.Uint32(lenBuf))
		if _, err := io.ReadFull(conn, payload); err != nil {
			return
		}
		var req map[string]any
		if err := json.Unmarshal(payload, &req); err != nil {
			return
		}
		resp, _ := json.Marshal(s.dispatch(req))
		out := make([]byte, 4+len(resp))
		binary.LittleEndian.PutUint32(out, uint32(len(resp)))
		copy(out[4:], resp)
		if _, err := conn.Write(out); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(req map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, _ := req["cmd"].(string)
	s.commands = append(s.commands, cmd)
	if s.failWith != "" {
		return fail(s.failWith)
	}
	collection, _ := req["collection"].(string)

	switch cmd {
	case "ping":
		return ok("pong")
	case "create_collection":
		if _, exists := s.collections[collection]; exists {
			return fail("collection '" + collection + "' already exists")
		}
		s.collections[collection] = nil
		return ok(nil)
	case "insert":
		doc, _ := req["doc"].(map[string]any)
		s.nextID++
		stored := map[string]any{"_id": s.nextID}
		for k, v := range doc {
			stored[k] = v
		}
		s.collections[collection] = append(s.collections[collection], stored)
		return ok(map[string]any{"id": s.nextID})
	case "find":
		query, _ := req["query"].(map[string]any)
		var out []any
		for _, d := range s.collections[collection] {
			if matches(d, query) {
				out = append(out, d)
			}
		}
		if out == nil {
			out = []any{}
		}
		return ok(out)
	default:
		return fail("unknown command: " + cmd)
	}
}

func matches(doc, query map[string]any) bool {
	for k, v := range query {
		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}
	return true
}

func ok(data any) map[string]any {
	return map[string]any{"ok": true, "data": data}
}

func fail(msg string) map[string]any {
	return map[string]any{"ok": false, "error": msg}
}
