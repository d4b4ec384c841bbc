// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// AMQPSPort is the default port for AMQP connections over TLS.
const AMQPSPort = 5671

// Configuration keys read by LoadSettings. Each is overridable through the
// environment with the BUSMQ prefix (BUSMQ_TLS_VERIFY_MODE, BUSMQ_PORT) or
// through an optional busmq.yaml file in the working directory.
const (
	configEnvPrefix     = "BUSMQ"
	configFileName      = "busmq"
	configFileType      = "yaml"
	configKeyVerifyMode = "tls_verify_mode"
	configKeyPort       = "port"
)

type (
	// Settings is the immutable configuration a ConnectionHandler is built
	// with. Resolve it once during process startup and share it freely; it is
	// never mutated afterwards.
	Settings struct {
		// VerifyMode is the TLS peer verification policy applied to every
		// transport bound through the handler.
		VerifyMode VerifyMode

		// Port is the remote port used for strict hostname verification
		// peer details.
		Port int
	}
)

// DefaultSettings returns the settings used when no process configuration is
// present: strict hostname verification against the AMQPS port.
func DefaultSettings() Settings {
	return Settings{
		VerifyMode: VerifyPeerName,
		Port:       AMQPSPort,
	}
}

// LoadSettings resolves Settings from process-level configuration once, at
// startup. Defaults are overridden by an optional busmq.yaml file, which is
// overridden by BUSMQ environment variables. Unrecognized verify mode values
// fall back to strict hostname verification.
func LoadSettings() (Settings, error) {
	v := viper.New()

	v.SetDefault(configKeyVerifyMode, "")
	v.SetDefault(configKeyPort, AMQPSPort)

	v.SetEnvPrefix(configEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, err
		}
		// No config file is fine, env and defaults still apply.
	}

	return Settings{
		VerifyMode: ResolveVerifyMode(v.GetString(configKeyVerifyMode)),
		Port:       v.GetInt(configKeyPort),
	}, nil
}
