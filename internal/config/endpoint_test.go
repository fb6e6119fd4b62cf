package config

import "testing"

func TestNormalizeOpenAIEndpoint(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: DefaultOpenAIEndpoint},
		{in: "127.0.0.1:8845", want: "http://127.0.0.1:8845/v1"},
		{in: "http://host/v1/", want: "http://host/v1"},
		{in: "https://host/v1/chat/completions", want: "https://host/v1"},
		{in: "http://host/v1/chat/completions/", want: "http://host/v1"},
		{in: "http://", want: DefaultOpenAIEndpoint},
	}
	for _, tc := range cases {
		if got := NormalizeOpenAIEndpoint(tc.in); got != tc.want {
			t.Fatalf("NormalizeOpenAIEndpoint(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
