// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

import (
	"crypto/tls"
	"crypto/x509"
	"strings"
)

type (
	// VerifyMode selects the TLS peer verification policy applied when a
	// transport is secured. It is resolved once from configuration and never
	// changes afterwards.
	VerifyMode int

	// PeerDetails identifies the remote peer for strict hostname verification.
	PeerDetails struct {
		Host string
		Port int
	}

	// TLSDomain carries the resolved TLS settings applied to one transport.
	TLSDomain struct {
		Mode        VerifyMode
		Config      *tls.Config
		PeerDetails *PeerDetails
	}
)

const (
	// VerifyPeerName validates the peer certificate chain against the
	// platform trust store and requires the certificate to match the peer
	// hostname. This is the default policy.
	VerifyPeerName VerifyMode = iota

	// VerifyPeer validates the peer certificate chain against the platform
	// trust store without checking the hostname.
	VerifyPeer

	// VerifyAnonymousPeer disables peer verification entirely. The transport
	// is still encrypted.
	VerifyAnonymousPeer
)

// Configuration values recognized by ResolveVerifyMode.
const (
	verifyModeAnonymous = "ANONYMOUS"
	verifyModeCertOnly  = "CERTONLY"
)

// ResolveVerifyMode maps a configuration value to a VerifyMode. ANONYMOUS and
// CERTONLY match case-insensitively; any other value, including empty, selects
// strict hostname verification.
func ResolveVerifyMode(value string) VerifyMode {
	switch {
	case strings.EqualFold(value, verifyModeAnonymous):
		return VerifyAnonymousPeer
	case strings.EqualFold(value, verifyModeCertOnly):
		return VerifyPeer
	default:
		return VerifyPeerName
	}
}

// String returns the hyphenated lowercase name of the verify mode.
func (m VerifyMode) String() string {
	switch m {
	case VerifyAnonymousPeer:
		return "anonymous-peer"
	case VerifyPeer:
		return "verify-peer"
	case VerifyPeerName:
		return "verify-peer-name"
	default:
		return "unknown"
	}
}

// systemRoots loads the platform trust store. Overridable for tests.
var systemRoots = func() (*x509.CertPool, error) {
	pool, err := x509.SystemCertPool()
	if err != nil {
		return nil, systemRootsError(err)
	}
	return pool, nil
}

// NewTLSDomain resolves the TLS settings for mode. peer is required for
// VerifyPeerName and ignored otherwise. Returns an error when the platform's
// secure transport support is unavailable.
func NewTLSDomain(mode VerifyMode, peer *PeerDetails) (*TLSDomain, error) {
	domain := &TLSDomain{Mode: mode}

	switch mode {
	case VerifyAnonymousPeer:
		// Encrypted but unauthenticated: no chain or hostname checks.
		domain.Config = &tls.Config{InsecureSkipVerify: true}

	case VerifyPeer:
		roots, err := systemRoots()
		if err != nil {
			return nil, err
		}
		// The built-in verification is skipped because it couples chain and
		// hostname checks; the chain-only validation runs in the callback.
		domain.Config = &tls.Config{
			InsecureSkipVerify:    true,
			VerifyPeerCertificate: verifyChainOnly(roots),
		}

	case VerifyPeerName:
		if peer == nil || peer.Host == "" {
			return nil, MissingPeerDetailsError
		}
		roots, err := systemRoots()
		if err != nil {
			return nil, err
		}
		domain.Config = &tls.Config{
			RootCAs:    roots,
			ServerName: peer.Host,
		}
		domain.PeerDetails = peer
	}

	return domain, nil
}

// verifyChainOnly validates the presented certificate chain against roots
// without matching the hostname.
func verifyChainOnly(roots *x509.CertPool) func(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error {
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if len(rawCerts) == 0 {
			return NoPeerCertificateError
		}

		leaf, err := x509.ParseCertificate(rawCerts[0])
		if err != nil {
			return peerCertificateParseError(err)
		}

		intermediates := x509.NewCertPool()
		for _, raw := range rawCerts[1:] {
			cert, err := x509.ParseCertificate(raw)
			if err != nil {
				return peerCertificateParseError(err)
			}
			intermediates.AddCert(cert)
		}

		if _, err := leaf.Verify(x509.VerifyOptions{
			Roots:         roots,
			Intermediates: intermediates,
			KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		}); err != nil {
			return certificateChainError(err)
		}

		return nil
	}
}
