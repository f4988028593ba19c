package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"os"
	"time"

	"software.sslmate.com/src/go-pkcs12"
)

func MakeCertPool(certs ...*x509.Certificate) *x509.CertPool {
	cp := x509.NewCertPool()
	for _, c := range certs {
		if c != nil {
			cp.AddCert(c)
		}
	}

	return cp
}

// LoadP12 reads a client certificate with its chain from a PKCS#12 file.
func LoadP12(filename, password string) (*tls.Certificate, []*x509.Certificate, error) {
	p12Data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}

	return DecodeP12(p12Data, password)
}

func DecodeP12(p12Data []byte, password string) (*tls.Certificate, []*x509.Certificate, error) {
	key, cert, cas, err := pkcs12.DecodeChain(p12Data, password)
	if err != nil {
		return nil, nil, err
	}

	if cert.NotAfter.Before(time.Now()) {
		return nil, nil, fmt.Errorf("cert is expired notAfter=(%s)", cert.NotAfter)
	}

	return &tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  key,
		Leaf:        cert,
	}, cas, nil
}

func LogCert(logger *slog.Logger, name string, cert *x509.Certificate) {
	if cert == nil {
		return
	}

	logger.Info(fmt.Sprintf("%s: subject %s, issuer %s", name, cert.Subject.String(), cert.Issuer.String()),
		slog.Time("not_after", cert.NotAfter))
}
