package mcpsession

import (
	"encoding/json"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

const (
	KindCredentials = "BMadCredentials"
	SchemaVersion   = "1.0.0"
)

// CredentialStore supplies the bearer token, if any, for an MCP server
// endpoint. It is consulted once per new session, at connect time.
type CredentialStore interface {
	Token(server string) (string, bool, error)
}

// ServerCredential is the credential material for one server endpoint.
type ServerCredential struct {
	Token string `json:"token"`
}

// CredentialsFile is the on-disk credential store, mapping server endpoint
// to credential material.
type CredentialsFile struct {
	Kind          string                      `json:"kind"`
	SchemaVersion string                      `json:"schemaVersion"`
	Servers       map[string]ServerCredential `json:"servers,omitempty"`
}

func (c *CredentialsFile) UnmarshalJSON(data []byte) error {
	type Doppleganger CredentialsFile

	tmp := (*Doppleganger)(c)

	if err := json.Unmarshal(data, tmp); err != nil {
		return err
	}

	if c.Kind != "" && c.Kind != KindCredentials {
		return fmt.Errorf("invalid kind %s, expected %s", c.Kind, KindCredentials)
	}

	return nil
}

// FileCredentialStore reads tokens from a YAML credentials file. The file is
// read on every lookup, matching the catalog's no-caching policy; a missing
// file simply means no tokens are configured.
type FileCredentialStore struct {
	Path string
}

var _ CredentialStore = &FileCredentialStore{}

func (s *FileCredentialStore) Token(server string) (string, bool, error) {
	if s.Path == "" {
		return "", false, nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read credentials file: %w", err)
	}

	creds := &CredentialsFile{}
	if err := yaml.Unmarshal(data, creds); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal credentials file: %w", err)
	}

	cred, ok := creds.Servers[server]
	if !ok || cred.Token == "" {
		return "", false, nil
	}

	return cred.Token, true, nil
}

// StaticCredentialStore serves tokens from an in-memory map.
type StaticCredentialStore map[string]string

var _ CredentialStore = StaticCredentialStore{}

func (s StaticCredentialStore) Token(server string) (string, bool, error) {
	token, ok := s[server]
	return token, ok && token != "", nil
}
