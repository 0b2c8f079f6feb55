package controllers

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gomail/gomail"
)

// SendPaymentRequestEmail notifies a patient that a doctor has asked for
// payment ahead of a follow-up.
func SendPaymentRequestEmail(msg, email string) error {
	senderEmail := os.Getenv("Email")
	senderPassword := os.Getenv("Password")

	m := gomail.NewMessage()
	m.SetHeader("From", senderEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Payment request from your doctor")
	m.SetBody("text/plain", msg)

	d := gomail.NewDialer("smtp.gmail.com", 587, senderEmail, senderPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}

// SendReceiptEmail confirms a received payment, with the PDF receipt attached.
func SendReceiptEmail(msg, email, attachmentName string, attachmentData []byte) error {
	senderEmail := os.Getenv("Email")
	senderPassword := os.Getenv("Password")

	m := gomail.NewMessage()
	m.SetHeader("From", senderEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Payment confirmation mail")
	m.SetBody("text/plain", msg)

	m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(attachmentData)
		return err
	}))

	d := gomail.NewDialer("smtp.gmail.com", 587, senderEmail, senderPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}

// SendRefundEmail notifies a patient that a refund was credited to their
// wallet after a cancellation.
func SendRefundEmail(msg, email string) error {
	senderEmail := os.Getenv("Email")
	senderPassword := os.Getenv("Password")

	m := gomail.NewMessage()
	m.SetHeader("From", senderEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Refund issued to your wallet")
	m.SetBody("text/plain", msg)

	d := gomail.NewDialer("smtp.gmail.com", 587, senderEmail, senderPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}
