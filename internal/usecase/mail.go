package usecase

import (
	"fmt"
	"time"
)

func verificationEmailHTML(link string, expiresIn time.Duration) string {
	return fmt.Sprintf(`
		<p>Hi,</p>
		<p>Thanks for registering. Please confirm your email address by clicking the link below:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s.</p>
		<p>If you did not create this account, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>Event Registry Team</p>
	`, link, link, expiresIn)
}

func passwordResetEmailHTML(link string, expiresIn time.Duration) string {
	return fmt.Sprintf(`
		<p>Hi,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, please click the link below to create a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s for your security.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>Event Registry Team</p>
	`, link, link, expiresIn)
}
