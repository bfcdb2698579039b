package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"

	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

// SecretManager resolves runtime secrets from HashiCorp Vault. It
// implements ports.SecretSource so the rest of the app never touches
// the Vault client directly.
type SecretManager struct {
	client *api.Client
}

func NewSecretManager(address, token string) (ports.SecretSource, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

func (sm *SecretManager) JWTSecret() (string, error) {
	return sm.read("secret/data/jwt", "secret")
}

func (sm *SecretManager) ClassifierAPIKey() (string, error) {
	return sm.read("secret/data/classifier", "api_key")
}

func (sm *SecretManager) read(path, field string) (string, error) {
	secret, err := sm.client.Logical().Read(path)
	if err != nil {
		return "", err
	}
	if secret == nil {
		return "", fmt.Errorf("vault: no secret at %s", path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("vault: unexpected payload at %s", path)
	}
	value, ok := data[field].(string)
	if !ok {
		return "", fmt.Errorf("vault: field %s missing at %s", field, path)
	}
	return value, nil
}

// StaticSecrets serves secrets straight from configuration. Used in
// development when Vault is disabled.
type StaticSecrets struct {
	jwtSecret     string
	classifierKey string
}

func NewStaticSecrets(jwtSecret, classifierAPIKey string) ports.SecretSource {
	return &StaticSecrets{jwtSecret: jwtSecret, classifierKey: classifierAPIKey}
}

func (s *StaticSecrets) JWTSecret() (string, error) {
	if s.jwtSecret == "" {
		return "", fmt.Errorf("jwt secret is not configured")
	}
	return s.jwtSecret, nil
}

func (s *StaticSecrets) ClassifierAPIKey() (string, error) {
	return s.classifierKey, nil
}
