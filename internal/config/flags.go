package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
)

var (
	errAddressFormat = errors.New("address must look like host:port")
	errPortRange     = errors.New("port must be between 1 and 65535")
)

// NetAddress is a host:port pair usable as a flag.Value. An empty host
// listens on every interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags reads the server flags from os.Args.
//
//	-a              HTTP listen address, host:port
//	-grpc-address   gRPC health listen address, host:port
//	-d              PostgreSQL URL or SQLite file path
//	-c, -config     JSON config file
//	-token-*        session token key, issuer and lifetime
//	-request-timeout, -cookie-secure
//	-provider, -model, -provider-timeout
//	-redis, -workers
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.NewFlagSet(os.Args[0], flag.ContinueOnError), os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var httpAddr, grpcAddr NetAddress

	fs.Var(&httpAddr, "a", "HTTP listen address host:port")
	fs.Var(&grpcAddr, "grpc-address", "gRPC health listen address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "PostgreSQL URL or SQLite file path")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias of -c)")

	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Session token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Session token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Session lifetime, e.g. 30m")

	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Per-request timeout, e.g. 30s")
	fs.BoolVar(&cfg.Server.CookieSecure, "cookie-secure", false, "Mark the session cookie Secure")

	fs.StringVar(&cfg.Provider.Kind, "provider", "", "Generation provider: openai, genai or none")
	fs.StringVar(&cfg.Provider.Model, "model", "", "Generation provider model")
	fs.DurationVar(&cfg.Provider.Timeout, "provider-timeout", 0, "Generation provider timeout")

	fs.StringVar(&cfg.Workers.RedisAddr, "redis", "", "Redis address or URL for the validation queue")
	fs.IntVar(&cfg.Workers.Concurrency, "workers", 0, "Validation worker count")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = httpAddr.String()
	cfg.Server.GRPCAddress = grpcAddr.String()

	return cfg, nil
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts "host:port", ":port" and "[ipv6]:port".
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errAddressFormat, err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("%w: %q", errAddressFormat, rawPort)
	}
	if port < 1 || port > 65535 {
		return errPortRange
	}

	a.Host = host
	a.Port = port
	return nil
}
