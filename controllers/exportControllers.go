package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"care-pay/configuration"
	"care-pay/models"
	"care-pay/services"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// GenerateReceiptPDF builds a payment receipt for a settled payment request.
func GenerateReceiptPDF(txn models.Transaction, appointment models.Appointment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(128, 0, 128)
	pdf.CellFormat(0, 10, "CarePay - Healthcare Payments", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Payment Receipt", "1", 1, "C", false, 0, "")
	addDetail(pdf, "Transaction ID", txn.TransactionID, true)
	addDetail(pdf, "Appointment ID", appointment.AppointmentID, true)
	addDetail(pdf, "Appointment Type", appointment.AppointmentType, true)
	addDetail(pdf, "Date", appointment.AppointmentDate, true)
	addDetail(pdf, "Time Slot", appointment.AppointmentTimeSlot, true)
	addDetail(pdf, "Mode", txn.Mode, false)
	addDetail(pdf, "Payment Method", txn.PaymentMethod, false)
	addDetail(pdf, "Status", txn.Status, false)
	pdf.SetFont("Arial", "B", 13)
	addDetail(pdf, "Amount Paid", fmt.Sprintf("Rs. %d", txn.Amount), true)

	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, "Thank you for using our service.", "", "L", false)
	pdf.SetY(pdf.GetY() + 12)
	pdf.CellFormat(0, 10, "This is a computer generated receipt", "", 1, "R", false, 0, "")

	var pdfBuffer bytes.Buffer
	if err := pdf.Output(&pdfBuffer); err != nil {
		return nil, err
	}
	return pdfBuffer.Bytes(), nil
}

// GenerateStatementPDF renders a list of ledger entries and their folded
// totals as a tabular statement.
func GenerateStatementPDF(title string, txns []models.Transaction) ([]byte, error) {
	summary := services.Summarize(txns, time.Now())

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(128, 0, 128)
	pdf.CellFormat(0, 10, "CarePay - Healthcare Payments", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, title, "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{62, 22, 30, 30, 24, 26, 50, 28}
	headers := []string{"Transaction", "Type", "Patient", "Doctor", "Amount", "Status", "Method", "Date"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, txn := range txns {
		row := []string{
			txn.TransactionID,
			txn.Type,
			txn.PatientID,
			txn.DoctorID,
			strconv.FormatInt(txn.Amount, 10),
			txn.Status,
			txn.PaymentMethod,
			txn.CreatedAt.Format("2006-01-02"),
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	addDetail(pdf, "Total Earnings", fmt.Sprintf("Rs. %d", summary.TotalEarnings), true)
	addDetail(pdf, "This Month", fmt.Sprintf("Rs. %d", summary.MonthEarnings), false)
	addDetail(pdf, "Refunded", fmt.Sprintf("Rs. %d", summary.TotalRefunded), false)

	var pdfBuffer bytes.Buffer
	if err := pdf.Output(&pdfBuffer); err != nil {
		return nil, err
	}
	return pdfBuffer.Bytes(), nil
}

// addDetail adds a detail line to the PDF
func addDetail(pdf *gofpdf.Fpdf, label, value string, isHeader bool) {
	if isHeader {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 255, 255)
	} else {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}

// DownloadReceipt serves the PDF receipt for one of the patient's
// transactions.
func DownloadReceipt(c *gin.Context) {
	var txn models.Transaction
	err := configuration.DB.Where("transaction_id = ? AND patient_id = ?",
		c.Param("id"), c.GetString("patientID")).First(&txn).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	var appointment models.Appointment
	if txn.AppointmentID != "" {
		configuration.DB.Where("appointment_id = ?", txn.AppointmentID).First(&appointment)
	}

	receipt, err := GenerateReceiptPDF(txn, appointment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt.pdf"`)
	c.Data(http.StatusOK, "application/pdf", receipt)
}

// ExportDoctorStatementPDF serves the doctor's ledger as a PDF statement.
func ExportDoctorStatementPDF(c *gin.Context) {
	txns, err := services.ListTransactionsForDoctor(configuration.DB, c.GetString("doctorID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	statement, err := GenerateStatementPDF("Earnings Statement", txns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate statement"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="statement.pdf"`)
	c.Data(http.StatusOK, "application/pdf", statement)
}

func writeTransactionsExcel(c *gin.Context, txns []models.Transaction) {
	headers := map[string]string{
		"A1": "Transaction ID",
		"B1": "Type",
		"C1": "Patient",
		"D1": "Doctor",
		"E1": "Appointment",
		"F1": "Amount",
		"G1": "Mode",
		"H1": "Status",
		"I1": "Payment Method",
		"J1": "Date",
	}
	file := excelize.NewFile()
	sheet := "Transactions"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i, txn := range txns {
		row := strconv.Itoa(i + 2)
		file.SetCellValue(sheet, "A"+row, txn.TransactionID)
		file.SetCellValue(sheet, "B"+row, txn.Type)
		file.SetCellValue(sheet, "C"+row, txn.PatientID)
		file.SetCellValue(sheet, "D"+row, txn.DoctorID)
		file.SetCellValue(sheet, "E"+row, txn.AppointmentID)
		file.SetCellValue(sheet, "F"+row, txn.Amount)
		file.SetCellValue(sheet, "G"+row, txn.Mode)
		file.SetCellValue(sheet, "H"+row, txn.Status)
		file.SetCellValue(sheet, "I"+row, txn.PaymentMethod)
		file.SetCellValue(sheet, "J"+row, txn.CreatedAt.Format("2006-01-02 15:04"))
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate spreadsheet"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}

// ExportDoctorTransactionsExcel serves the doctor's ledger as a spreadsheet.
func ExportDoctorTransactionsExcel(c *gin.Context) {
	txns, err := services.ListTransactionsForDoctor(configuration.DB, c.GetString("doctorID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	writeTransactionsExcel(c, txns)
}

// ExportAllTransactionsExcel serves the full ledger as a spreadsheet for the
// admin view.
func ExportAllTransactionsExcel(c *gin.Context) {
	txns, err := services.ListAllTransactions(configuration.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	writeTransactionsExcel(c, txns)
}

func writeTransactionsCSV(c *gin.Context, txns []models.Transaction) {
	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Header("Content-Type", "text/csv")

	writer := csv.NewWriter(c.Writer)
	writer.Write([]string{"transaction_id", "type", "patient_id", "doctor_id",
		"appointment_id", "amount", "mode", "status", "payment_method", "created_at"})
	for _, txn := range txns {
		writer.Write([]string{
			txn.TransactionID,
			txn.Type,
			txn.PatientID,
			txn.DoctorID,
			txn.AppointmentID,
			strconv.FormatInt(txn.Amount, 10),
			txn.Mode,
			txn.Status,
			txn.PaymentMethod,
			txn.CreatedAt.Format(time.RFC3339),
		})
	}
	writer.Flush()
}

// ExportDoctorTransactionsCSV serves the doctor's ledger as CSV.
func ExportDoctorTransactionsCSV(c *gin.Context) {
	txns, err := services.ListTransactionsForDoctor(configuration.DB, c.GetString("doctorID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	writeTransactionsCSV(c, txns)
}

// ExportAllTransactionsCSV serves the full ledger as CSV.
func ExportAllTransactionsCSV(c *gin.Context) {
	txns, err := services.ListAllTransactions(configuration.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	writeTransactionsCSV(c, txns)
}
