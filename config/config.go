package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBUrl             string
	PublicURL         string
	AdminPasswordHash string
	TokenSecret       string
	TokenTTL          time.Duration
	Debug             bool
}

// ParseFlags reads configuration from command line flags, with defaults
// taken from the environment (a .env file is honored when present).
func ParseFlags() (cfg Config, err error) {
	godotenv.Load()

	var host string
	flag.StringVar(&host, "host", envOr("PULSE_HOST", "0.0.0.0"), "listen host name")
	var port uint
	flag.UintVar(&port, "port", envOrUint("PULSE_PORT", 80), "listen port number")
	flag.StringVar(&cfg.DBUrl, "db-url", envOr("PULSE_DB", "pulse.sqlite"), "path to SQLite3 DB file")
	flag.StringVar(&cfg.PublicURL, "public-url", envOr("PULSE_PUBLIC_URL", ""), "public base URL for share links (default the listen address)")
	flag.StringVar(&cfg.AdminPasswordHash, "admin-password-hash", envOr("PULSE_ADMIN_PASSWORD_HASH", ""), "bcrypt hash of the admin password")
	flag.StringVar(&cfg.TokenSecret, "token-secret", envOr("PULSE_TOKEN_SECRET", ""), "secret key for token encryption and decryption")
	var ttl uint
	flag.UintVar(&ttl, "token-ttl", envOrUint("PULSE_TOKEN_TTL", 1200), "token TTL in seconds")
	flag.BoolVar(&cfg.Debug, "debug", os.Getenv("PULSE_DEBUG") != "", "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
		return
	}
	if cfg.AdminPasswordHash == "" {
		err = errors.New("missing parameter -admin-password-hash")
	}

	return
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrUint(key string, fallback uint) uint {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(n)
		}
	}
	return fallback
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

// ShareURL derives the public link under which a survey collects responses.
func (cfg Config) ShareURL(surveyID string) string {
	base := cfg.PublicURL
	if base == "" {
		base = cfg.Url()
	}
	return strings.TrimSuffix(base, "/") + "/survey/" + surveyID
}
