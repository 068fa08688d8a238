package http

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"syscall"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
)

// Classify converts a transport error into a failure result. The error
// message is kept verbatim.
func Classify(rawURL string, err error) *entity.Failure {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	return &entity.Failure{
		Kind:    ClassifyKind(err),
		Message: message,
		URL:     rawURL,
	}
}

// ClassifyKind maps an error returned by net/http onto a failure kind
func ClassifyKind(err error) entity.FailureKind {
	if err == nil {
		return entity.FailureOther
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return entity.FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return entity.FailureTimeout
	}

	if isConnectionError(err) {
		return entity.FailureConnectionError
	}

	if isProtocolError(err) {
		return entity.FailureProtocolError
	}

	return entity.FailureOther
}

func isConnectionError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	// TLS establishment
	var verifyErr *tls.CertificateVerificationError
	var alertErr tls.AlertError
	var unknownAuthority x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError
	return errors.As(err, &verifyErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}

func isProtocolError(err error) bool {
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}

	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}

	message := err.Error()
	for _, marker := range protocolMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}

// net/http reports most framing problems as plain formatted errors
var protocolMarkers = []string{
	"malformed HTTP",
	"transport connection broken",
	"server gave HTTP response to HTTPS client",
	"invalid header",
	"unexpected EOF",
	"http2:",
}
