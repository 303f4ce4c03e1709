package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vaultkeeper/internal/flagx"
	"github.com/dmitrijs2005/vaultkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the current value alone.
type JsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	AccessToken        *string         `json:"access_token"`
	APIVersion         *string         `json:"api_version"`
	Timeout            *timex.Duration `json:"timeout"`
	HistoryDB          *string         `json:"history_db"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.AccessToken != nil {
		cfg.AccessToken = *jc.AccessToken
	}
	if jc.APIVersion != nil {
		cfg.APIVersion = *jc.APIVersion
	}
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	if jc.HistoryDB != nil {
		cfg.HistoryDB = *jc.HistoryDB
	}
	return nil
}
