package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
		want string
	}{
		{
			name: "nil options",
			opts: nil,
			want: "",
		},
		{
			name: "plain password",
			opts: &Options{Host: "localhost", Port: 5432, Username: "app", Password: "secret", Database: "mentors", SSLMode: "disable"},
			want: "host=localhost port=5432 user=app password=secret dbname=mentors sslmode=disable",
		},
		{
			name: "empty password",
			opts: &Options{Host: "localhost", Port: 5432, Username: "app", Database: "mentors", SSLMode: "disable"},
			want: "host=localhost port=5432 user=app password='' dbname=mentors sslmode=disable",
		},
		{
			name: "password with spaces and quotes",
			opts: &Options{Host: "db", Port: 5433, Username: "app", Password: "it's a secret", Database: "mentors", SSLMode: "require"},
			want: "host=db port=5433 user=app password='it''s a secret' dbname=mentors sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildDSN(tt.opts))
		})
	}
}

func TestBuildURIEncodesPassword(t *testing.T) {
	opts := &Options{Host: "db", Port: 5432, Username: "app", Password: "p@ss/word", Database: "mentors", SSLMode: "disable"}
	assert.Equal(t, "postgresql://app:p%40ss%2Fword@db:5432/mentors?sslmode=disable", BuildURI(opts))
}

func TestOptionsStringRedactsPassword(t *testing.T) {
	opts := NewOptions()
	opts.Password = "secret"
	assert.NotContains(t, opts.String(), "secret")
	assert.Contains(t, opts.String(), redactedPassword)
}
