package postgres

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/config"
)

var dsnQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// DSN builds a key/value connection string for lib/pq. Values are single
// quoted so passwords may hold spaces, quotes or backslashes.
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		quoteDSN(cfg.Host), cfg.Port, quoteDSN(cfg.User), quoteDSN(cfg.Password), quoteDSN(cfg.Name),
	)
}

func quoteDSN(v string) string {
	return "'" + dsnQuoter.Replace(v) + "'"
}

// URL returns cfg.DSN when set, else a postgres:// URL equivalent to DSN,
// which is the form pgxpool expects.
func URL(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
