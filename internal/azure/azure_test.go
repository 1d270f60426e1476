package azure

import (
	"testing"
)

func TestIsURI(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"az://container/blob.bin", true},
		{"az://mycontainer", true},
		{"az://", true},
		{"s3://bucket/key", false},
		{"./local/file.txt", false},
		{"", false},
		{"AZ://container/blob", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsURI(tt.input); got != tt.want {
				t.Errorf("IsURI(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    Location
		wantErr bool
	}{
		{name: "container and blob", uri: "az://artifacts/in/data.bin", want: Location{"artifacts", "in/data.bin"}},
		{name: "container only", uri: "az://artifacts", want: Location{"artifacts", ""}},
		{name: "trailing slash", uri: "az://artifacts/", want: Location{"artifacts", ""}},
		{name: "not azure", uri: "s3://bucket/key", wantErr: true},
		{name: "empty", uri: "az://", wantErr: true},
		{name: "empty container", uri: "az:///blob", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseURI(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseURI(%q) expected error, got nil", tt.uri)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseURI(%q): %v", tt.uri, err)
			}
			if got != tt.want {
				t.Errorf("ParseURI(%q) = %+v, want %+v", tt.uri, got, tt.want)
			}
		})
	}
}

func TestLocation_String(t *testing.T) {
	if got := (Location{"c", "a/b"}).String(); got != "az://c/a/b" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewClient_NoAccountOrConnStr(t *testing.T) {
	if _, err := NewClient(ClientOptions{}); err == nil {
		t.Fatal("expected error when no account or connection string is provided")
	}
}
