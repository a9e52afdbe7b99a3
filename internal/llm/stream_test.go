package llm

import (
	"strings"
	"testing"
)

func TestDecodeReply(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr string
	}{
		{
			name:   "stream json with result",
			output: `{"type":"system","subtype":"init"}` + "\n" + `{"type":"assistant"}` + "\n" + `{"type":"result","result":"the reply"}`,
			want:   "the reply",
		},
		{
			name:   "plain text output",
			output: "just a plain reply\n",
			want:   "just a plain reply",
		},
		{
			name:    "stream without result event",
			output:  `{"type":"system","subtype":"init"}`,
			wantErr: "without a result",
		},
		{
			name:    "error result",
			output:  `{"type":"result","is_error":true,"subtype":"error_max_turns"}`,
			wantErr: "model reported an error",
		},
		{
			name:   "last result wins",
			output: `{"type":"result","result":"first"}` + "\n" + `{"type":"result","result":"second"}`,
			want:   "second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeReply([]byte(tt.output))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCappedBuffer(t *testing.T) {
	b := &cappedBuffer{limit: 5}
	n, err := b.Write([]byte("hello world"))
	if err != nil || n != 11 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if b.String() != "hello" {
		t.Fatalf("buf = %q", b.String())
	}
}
