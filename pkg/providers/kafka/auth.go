package kafka

import (
	"crypto/tls"

	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func (a *KafkaAuth) saslMechanism() (sasl.Mechanism, error) {
	if a == nil || !a.Enabled {
		return nil, nil
	}
	switch a.Mechanism {
	case SaslPlain:
		return plain.Mechanism{Username: a.User, Password: a.Password}, nil
	case SaslScramSHA256:
		return scram.Mechanism(scram.SHA256, a.User, a.Password)
	case SaslScramSHA512:
		return scram.Mechanism(scram.SHA512, a.User, a.Password)
	default:
		return nil, xerrors.Errorf("unknown sasl mechanism: %s", a.Mechanism)
	}
}

func (d *KafkaDestination) tlsConfig() *tls.Config {
	if !d.TLS {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}
