package api

import (
	"testing"
)

func TestCodecUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    CreateGroupRequest
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Pool","adminId":"a-1"}`, want: CreateGroupRequest{Name: "Pool", AdminID: "a-1"}},
		{name: "empty body", body: "", want: CreateGroupRequest{}},
		{name: "unknown field", body: `{"name":"Pool","adminId":"a-1","id":"forged"}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "trailing data", body: `{"name":"Pool"} {}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got CreateGroupRequest
			err := Codec{}.Unmarshal([]byte(tt.body), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, decoded %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCodecMarshalEmptyMembers(t *testing.T) {
	data, err := Codec{}.Marshal(&Group{ID: "g-1", Members: []string{}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"id":"g-1","name":"","adminId":"","members":[],"createdAt":"0001-01-01T00:00:00Z"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestCodecName(t *testing.T) {
	if got := (Codec{}).Name(); got != "json" {
		t.Errorf("Name() = %q, want json", got)
	}
}
