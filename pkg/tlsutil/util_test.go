package tlsutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"software.sslmate.com/src/go-pkcs12"
)

func makeCert(t *testing.T, notAfter time.Time) (*ecdsa.PrivateKey, *x509.Certificate) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "eatnow-client"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     notAfter,
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return key, cert
}

func TestDecodeP12(t *testing.T) {
	key, cert := makeCert(t, time.Now().Add(time.Hour*24))

	data, err := pkcs12.Modern.Encode(key, cert, nil, "secret")
	require.NoError(t, err)

	tc, cas, err := DecodeP12(data, "secret")
	require.NoError(t, err)
	assert.Empty(t, cas)
	assert.Equal(t, "eatnow-client", tc.Leaf.Subject.CommonName)

	_, _, err = DecodeP12(data, "wrong")
	require.Error(t, err)
}

func TestDecodeExpired(t *testing.T) {
	key, cert := makeCert(t, time.Now().Add(-time.Minute))

	data, err := pkcs12.Modern.Encode(key, cert, nil, "secret")
	require.NoError(t, err)

	_, _, err = DecodeP12(data, "secret")
	require.Error(t, err)
}

func TestCertPool(t *testing.T) {
	_, cert := makeCert(t, time.Now().Add(time.Hour))

	assert.NotNil(t, MakeCertPool(cert, nil))
}
