package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		CookieSecure   bool     `json:"cookie_secure"`
	} `json:"server,omitempty"`

	Provider struct {
		Kind    string   `json:"kind"`
		APIKey  string   `json:"api_key"`
		Model   string   `json:"model"`
		BaseURL string   `json:"base_url"`
		Timeout Duration `json:"timeout"`
	} `json:"provider,omitempty"`

	Workers struct {
		Concurrency int    `json:"concurrency"`
		QueueSize   int    `json:"queue_size"`
		RedisAddr   string `json:"redis_addr"`
		QueueKey    string `json:"queue_key"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			CookieSecure:   jsonCfg.Server.CookieSecure,
		},
		Provider: Provider{
			Kind:    jsonCfg.Provider.Kind,
			APIKey:  jsonCfg.Provider.APIKey,
			Model:   jsonCfg.Provider.Model,
			BaseURL: jsonCfg.Provider.BaseURL,
			Timeout: time.Duration(jsonCfg.Provider.Timeout),
		},
		Workers: Workers{
			Concurrency: jsonCfg.Workers.Concurrency,
			QueueSize:   jsonCfg.Workers.QueueSize,
			RedisAddr:   jsonCfg.Workers.RedisAddr,
			QueueKey:    jsonCfg.Workers.QueueKey,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
