package gelf

import (
	"encoding/json"
	"math"
	"net"
	"testing"
	"time"
)

func listen(t *testing.T) net.PacketConn {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { pc.Close() })
	return pc
}

func receive(t *testing.T, pc net.PacketConn) map[string]any {
	t.Helper()
	pc.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 8192)
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg map[string]any
	if err := json.Unmarshal(buf[:n], &msg); err != nil {
		t.Fatalf("decode gelf message: %v", err)
	}
	return msg
}

func TestWriter_SlogRecord(t *testing.T) {
	pc := listen(t)
	w, err := New(pc.LocalAddr().String(), "formdesk")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	line := `{"time":"2026-03-01T10:00:00.5Z","level":"ERROR","msg":"save submission","err":"disk full","id":"abc","attempt":2,"ok":false,"stacktrace":"goroutine 1"}` + "\n"
	n, err := w.Write([]byte(line))
	if err != nil || n != len(line) {
		t.Fatalf("Write = %d, %v", n, err)
	}

	msg := receive(t, pc)
	if msg["version"] != "1.1" || msg["_service"] != "formdesk" {
		t.Errorf("unexpected envelope %v", msg)
	}
	if msg["short_message"] != "save submission" {
		t.Errorf("short_message = %v", msg["short_message"])
	}
	if msg["level"] != float64(3) {
		t.Errorf("level = %v, want 3", msg["level"])
	}
	if ts, _ := msg["timestamp"].(float64); math.Abs(ts-1772359200.5) > 1e-3 {
		t.Errorf("timestamp = %v", msg["timestamp"])
	}
	if msg["full_message"] != "goroutine 1" {
		t.Errorf("full_message = %v", msg["full_message"])
	}
	if msg["_err"] != "disk full" || msg["_record_id"] != "abc" || msg["_attempt"] != float64(2) || msg["_ok"] != "false" {
		t.Errorf("extra fields not mapped: %v", msg)
	}
}

func TestWriter_PlainLine(t *testing.T) {
	pc := listen(t)
	w, err := New(pc.LocalAddr().String(), "formdesk")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	w.Write([]byte("not json\n"))
	msg := receive(t, pc)
	if msg["short_message"] != "not json" {
		t.Errorf("short_message = %v", msg["short_message"])
	}
	if msg["level"] != float64(6) {
		t.Errorf("level = %v, want 6", msg["level"])
	}
}

func TestSyslogLevel(t *testing.T) {
	cases := map[string]int{"DEBUG": 7, "INFO": 6, "INFO+2": 6, "WARN": 4, "ERROR": 3, "": 6}
	for in, want := range cases {
		if got := syslogLevel(in); got != want {
			t.Errorf("syslogLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
