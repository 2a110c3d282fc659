package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeKeyPair writes a self-signed localhost certificate and returns the
// certificate pool trusting it along with both file paths.
func writeKeyPair(t *testing.T) (*x509.CertPool, string, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(42),
		Subject:      pkix.Name{CommonName: "accounts.test"},
		NotBefore:    time.Now().Add(-time.Minute),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	dir := t.TempDir()
	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}), 0o600))

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	pool := x509.NewCertPool()
	pool.AddCert(cert)

	return pool, certFile, keyFile
}

// handshake accepts one connection on ln and completes the server side of
// the TLS handshake.
func handshake(ln net.Listener) {
	conn, err := ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	if tc, ok := conn.(*tls.Conn); ok {
		_ = tc.Handshake()
	}
}

func TestNewSecurityLayer(t *testing.T) {
	tlsLayer, ok := NewSecurityLayer(true, "cert.pem", "key.pem").(*TLSListener)
	require.True(t, ok)
	assert.Equal(t, "cert.pem", tlsLayer.certFileName)
	assert.Equal(t, "key.pem", tlsLayer.privateKeyFileName)

	_, ok = NewSecurityLayer(false, "cert.pem", "key.pem").(*PlainListener)
	assert.True(t, ok)
}

func TestTLSListener_Handshake(t *testing.T) {
	pool, certFile, keyFile := writeKeyPair(t)

	ln, err := NewTLSListener(certFile, keyFile).Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go handshake(ln)

	conn, err := tls.Dial("tcp", ln.Addr().String(), &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12})
	require.NoError(t, err)
	defer conn.Close()

	state := conn.ConnectionState()
	assert.True(t, state.HandshakeComplete)
	assert.GreaterOrEqual(t, state.Version, uint16(tls.VersionTLS12))
}

func TestTLSListener_RejectsLegacyVersions(t *testing.T) {
	_, certFile, keyFile := writeKeyPair(t)

	ln, err := NewTLSListener(certFile, keyFile).Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go handshake(ln)

	_, err = tls.Dial("tcp", ln.Addr().String(), &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // self-signed test certificate
		MaxVersion:         tls.VersionTLS11,
	})
	require.Error(t, err)
}

func TestTLSListener_MissingKeyPair(t *testing.T) {
	_, err := NewTLSListener("missing.pem", "missing-key.pem").Listen("tcp", "127.0.0.1:0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load TLS certificate")
}

func TestPlainListener_Listen(t *testing.T) {
	ln, err := NewPlainListener().Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, ok := ln.(*net.TCPListener)
	assert.True(t, ok)
}

func TestListen_InvalidAddress(t *testing.T) {
	_, certFile, keyFile := writeKeyPair(t)

	layers := map[string]interface {
		Listen(protocol, addr string) (net.Listener, error)
	}{
		"tls":   NewTLSListener(certFile, keyFile),
		"plain": NewPlainListener(),
	}

	for name, layer := range layers {
		t.Run(name, func(t *testing.T) {
			_, err := layer.Listen("tcp", "invalid-address")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to listen on invalid-address")
		})
	}
}
