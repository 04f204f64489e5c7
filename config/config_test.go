package config

import (
	"testing"
	"time"
)

func TestFromViper(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]interface{}
		check   func(t *testing.T, c *Config)
		wantErr bool
	}{
		{
			name: "defaults",
			check: func(t *testing.T, c *Config) {
				if c.Timeout != 10*time.Second {
					t.Errorf("Timeout = %s, want 10s", c.Timeout)
				}
				if c.DebounceDelay != 300*time.Millisecond {
					t.Errorf("DebounceDelay = %s, want 300ms", c.DebounceDelay)
				}
				if got := c.Endpoints[EndpointMothers]; got != "/maes" {
					t.Errorf("mothers endpoint = %q, want /maes", got)
				}
			},
		},
		{
			name: "read suffix and trailing slash",
			env:  map[string]interface{}{"API_BASE": "http://api.local/", "READ_SUFFIX": "/dto"},
			check: func(t *testing.T, c *Config) {
				if c.APIBase != "http://api.local" {
					t.Errorf("APIBase = %q", c.APIBase)
				}
				if got := c.ReadPath(EndpointStudents); got != "/alunos/dto" {
					t.Errorf("ReadPath = %q, want /alunos/dto", got)
				}
			},
		},
		{
			name: "endpoint override",
			env:  map[string]interface{}{"ENDPOINT_FATHERS": "/responsaveis-paternos"},
			check: func(t *testing.T, c *Config) {
				if got := c.Endpoints[EndpointFathers]; got != "/responsaveis-paternos" {
					t.Errorf("fathers endpoint = %q", got)
				}
			},
		},
		{name: "bad endpoint", env: map[string]interface{}{"ENDPOINT_INFO": "info"}, wantErr: true},
		{name: "bad timeout", env: map[string]interface{}{"HTTP_TIMEOUT": "0s"}, wantErr: true},
		{name: "negative retries", env: map[string]interface{}{"MAX_RETRIES": -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			for k, val := range tt.env {
				v.Set(k, val)
			}
			c, err := FromViper(v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromViper() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}

func TestDefaultIsIndependent(t *testing.T) {
	a := Default()
	a.Endpoints[EndpointInfo] = "/changed"
	if Default().Endpoints[EndpointInfo] != "/info" {
		t.Error("Default() shares its endpoint map between calls")
	}
}
