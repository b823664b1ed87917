// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the command line of either binary.
//
// Flags:
//
//	-a              server listen address host:port
//	-r              record API address used by the client
//	-d              server database DSN
//	-local-db       client SQLite file
//	-c/-config      JSON config file path
//	-token-sign-key, -token-issuer, -token-duration
//	-client-id, -client-secret, -client-secret-hash
//	-hash-key       payload HMAC key
//	-request-timeout
//	-object, -soup, -fields (comma separated), -limit
//	-sync-interval
//	-log-file
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(programName(), flag.ContinueOnError)

	var serverAddress, remoteAddress NetAddress
	var databaseDSN, localDSN string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout, syncInterval time.Duration
	var clientID, clientSecret, clientSecretHash string
	var hashKey string
	var objectName, soupName, fields string
	var recordLimit int
	var logFile string

	fs.Var(&serverAddress, "a", "Server listen address host:port")
	fs.Var(&remoteAddress, "r", "Record API address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Server database DSN")
	fs.StringVar(&localDSN, "local-db", "", "Client SQLite database file")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&clientID, "client-id", "", "API client id")
	fs.StringVar(&clientSecret, "client-secret", "", "API client secret")
	fs.StringVar(&clientSecretHash, "client-secret-hash", "", "bcrypt hash of the API client secret")
	fs.StringVar(&hashKey, "hash-key", "", "Payload HMAC key")
	fs.StringVar(&objectName, "object", "", "Remote object name")
	fs.StringVar(&soupName, "soup", "", "Local soup name")
	fs.StringVar(&fields, "fields", "", "Comma separated list of fields to sync down")
	fs.IntVar(&recordLimit, "limit", 0, "Max records per sync down")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background refresh interval")
	fs.StringVar(&logFile, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:     tokenSignKey,
			TokenIssuer:      tokenIssuer,
			TokenDuration:    tokenDuration,
			HashKey:          hashKey,
			ClientID:         clientID,
			ClientSecretHash: clientSecretHash,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Local: Local{DSN: localDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress.String(),
			RequestTimeout: requestTimeout,
			ClientID:       clientID,
			ClientSecret:   clientSecret,
		},
		Sync: Sync{
			ObjectName:  objectName,
			SoupName:    soupName,
			FieldList:   splitList(fields),
			RecordLimit: recordLimit,
		},
		Workers:      Workers{SyncInterval: syncInterval},
		Log:          Log{FilePath: logFile},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func programName() string {
	if len(os.Args) > 0 {
		return os.Args[0]
	}
	return "contacts-keeper"
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns host:port, or "" when neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
