package domain

// Session keys read and written by the account flows.
const (
	SessionUnverifiedEmail  = "unverified_email"
	SessionVerificationCode = "verification_code"
	SessionResetEmail       = "reset_email"
	SessionResetCode        = "reset_code"
	SessionUser             = "user"
)
