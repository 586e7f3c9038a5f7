package submission

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	signatureWidth  = 600
	signatureHeight = 200

	dataURLPrefix = "data:image/png;base64,"
)

var ErrInvalidSignature = errors.New("signature must be a base64 image data URL")

// NormalizeSignature decodes a signature data URL, fits it inside the
// signature box and returns it as a PNG data URL.
func NormalizeSignature(dataURL string) (string, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return "", ErrInvalidSignature
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode signature: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode signature image: %w", err)
	}

	fitted := imaging.Fit(img, signatureWidth, signatureHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.PNG); err != nil {
		return "", fmt.Errorf("encode signature: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
