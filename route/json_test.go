package route

import (
	"encoding/json"
	"testing"
)

func TestRoute_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Route
		want string
	}{
		{
			name: "user",
			in:   UserRoute(User{Platform: GitHub, Username: "ctsrc"}),
			want: `{"user":{"platform":"github","username":"ctsrc"}}`,
		},
		{
			name: "repo",
			in:   RepoRoute(User{Platform: GitLab, Username: "qemu-project"}, "qemu"),
			want: `{"repo":{"user":{"platform":"gitlab","username":"qemu-project"},"repo_name":"qemu"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != tt.want {
				t.Errorf("Marshal() = %s, want %s", b, tt.want)
			}
			var got Route
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatal(err)
			}
			if got != tt.in {
				t.Errorf("Unmarshal(%s) = %#v, want %#v", b, got, tt.in)
			}
		})
	}
}

func TestRoute_UnmarshalJSON_invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty object", `{}`},
		{"both variants", `{"user":{"platform":"github","username":"a"},"repo":{"user":{"platform":"github","username":"a"},"repo_name":"b"}}`},
		{"unknown platform", `{"user":{"platform":"bitbucket","username":"a"}}`},
		{"missing platform", `{"user":{"username":"a"}}`},
		{"empty username", `{"user":{"platform":"github","username":""}}`},
		{"empty repo name", `{"repo":{"user":{"platform":"gitlab","username":"a"},"repo_name":""}}`},
		{"not an object", `"https://github.com/a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Route
			if err := json.Unmarshal([]byte(tt.in), &r); err == nil {
				t.Errorf("Unmarshal(%s) = %#v, want error", tt.in, r)
			}
		})
	}
}

func TestRoute_MarshalJSON_zero(t *testing.T) {
	if _, err := json.Marshal(Route{}); err == nil {
		t.Error("zero route encoded without error")
	}
}
