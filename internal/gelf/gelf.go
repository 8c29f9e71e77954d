package gelf

import (
	"encoding/json"
	"net"
	"os"
	"strings"
	"time"
)

// Writer sends GELF messages over UDP and implements io.Writer
// so it can sit behind io.MultiWriter next to the slog JSON handler.
type Writer struct {
	conn     net.Conn
	hostname string
	service  string
}

// New creates a GELF UDP writer connected to addr (e.g. "172.17.0.1:12201").
func New(addr, service string) (*Writer, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = service
	}

	return &Writer{conn: conn, hostname: hostname, service: service}, nil
}

func (w *Writer) Close() error {
	return w.conn.Close()
}

// Write implements io.Writer. Each call carries one slog JSON record and
// sends one GELF message. Lines that are not JSON are sent as-is.
func (w *Writer) Write(p []byte) (int, error) {
	payload, err := json.Marshal(w.message(p))
	if err != nil {
		return len(p), nil // don't fail the log call
	}

	// Fire-and-forget
	w.conn.Write(payload)
	return len(p), nil
}

func (w *Writer) message(p []byte) map[string]any {
	line := strings.TrimRight(string(p), "\n")
	msg := map[string]any{
		"version":       "1.1",
		"host":          w.hostname,
		"short_message": line,
		"timestamp":     float64(time.Now().UnixNano()) / 1e9,
		"level":         6,
		"_service":      w.service,
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return msg
	}

	for k, v := range rec {
		switch k {
		case "msg":
			if s, ok := v.(string); ok && s != "" {
				msg["short_message"] = s
			}
		case "level":
			s, _ := v.(string)
			msg["level"] = syslogLevel(s)
		case "time":
			if s, ok := v.(string); ok {
				if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
					msg["timestamp"] = float64(ts.UnixNano()) / 1e9
				}
			}
		case "stacktrace":
			msg["full_message"] = v
		default:
			msg[fieldName(k)] = fieldValue(v)
		}
	}
	return msg
}

// syslogLevel maps slog level names, including offsets like "INFO+2".
func syslogLevel(s string) int {
	switch {
	case strings.HasPrefix(s, "DEBUG"):
		return 7
	case strings.HasPrefix(s, "WARN"):
		return 4
	case strings.HasPrefix(s, "ERROR"):
		return 3
	default:
		return 6
	}
}

// fieldName prefixes additional fields; "_id" is reserved by GELF.
func fieldName(k string) string {
	if k == "id" {
		return "_record_id"
	}
	return "_" + k
}

// fieldValue keeps strings and numbers; anything else is flattened to JSON.
func fieldValue(v any) any {
	switch v := v.(type) {
	case string, float64:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
