package services

// Mailer abstracts the outbound email transport used for OTP delivery.
// The production implementation lives in pkg/mailer; tests substitute a mock.
type Mailer interface {
	SendOTP(to, otp string) error
}
