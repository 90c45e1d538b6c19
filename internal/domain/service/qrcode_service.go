package service

// QRCodeService defines the interface for QR code generation for shareable
// account URLs.
type QRCodeService interface {
	// GenerateShareQR generates a PNG QR code encoding the shareable URL for
	// a bank account's share id.
	GenerateShareQR(shareID string) ([]byte, error)
}
