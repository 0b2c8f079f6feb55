package routes

import (
	"care-pay/authentication"
	"care-pay/controllers"
	"care-pay/sse"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func UserRoutes() *gin.Engine {
	//creates a new Gin engine instance with default configurations
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	//patient routes
	r.POST("/patients/signup", controllers.PatientSignup)
	r.POST("/patients/login", controllers.PatientLogin)

	patient := r.Group("/patient")
	patient.Use(authentication.PatientAuthMiddleware())
	{
		patient.GET("/logout", controllers.Logout)
		patient.POST("/accounts", controllers.AddPatientAccount)
		patient.GET("/accounts", controllers.ListPatientAccounts)
		patient.DELETE("/accounts/:id", controllers.RemovePatientAccount)
		patient.GET("/pricing/:doctor_id", controllers.GetPricing)
		patient.GET("/payment/requests", controllers.ListPatientPaymentRequests)
		patient.POST("/payment/requests/:id/pay", controllers.PayPaymentRequest)
		patient.POST("/payment/requests/:id/decline", controllers.DeclinePaymentRequest)
		patient.GET("/wallet", controllers.GetWallet)
		patient.GET("/transactions", controllers.GetPatientTransactions)
		patient.GET("/transactions/:id/receipt", controllers.DownloadReceipt)
		patient.GET("/appointment/:id", controllers.GetAppointment)
		patient.GET("/events", sse.PaymentEventsSSE)
	}

	//doctor routes
	r.POST("/doctors/signup", controllers.DoctorSignup)
	r.POST("/doctors/login", controllers.DoctorLogin)

	doctors := r.Group("/doctor")
	doctors.Use(authentication.DoctorAuthMiddleware())
	{
		doctors.GET("/logout", controllers.Logout)
		doctors.POST("/accounts", controllers.AddDoctorAccount)
		doctors.GET("/accounts", controllers.ListDoctorAccounts)
		doctors.DELETE("/accounts/:id", controllers.RemoveDoctorAccount)
		doctors.POST("/pricing", controllers.SetPricing)
		doctors.GET("/pricing", controllers.GetPricing)
		doctors.POST("/payment/requests", controllers.CreatePaymentRequest)
		doctors.GET("/payment/requests", controllers.ListDoctorPaymentRequests)
		doctors.POST("/cancel/appointment/:id", controllers.CancelAppointment)
		doctors.GET("/appointment/:id", controllers.GetAppointment)
		doctors.GET("/transactions", controllers.GetDoctorTransactions)
		doctors.GET("/transactions/export/pdf", controllers.ExportDoctorStatementPDF)
		doctors.GET("/transactions/export/excel", controllers.ExportDoctorTransactionsExcel)
		doctors.GET("/transactions/export/csv", controllers.ExportDoctorTransactionsCSV)
		doctors.GET("/events", sse.PaymentEventsSSE)
	}

	//Admin routes
	r.POST("/admin/login", controllers.AdminLogin)

	admin := r.Group("/admin")
	admin.Use(authentication.AdminAuthMiddleware())
	{
		admin.GET("/view/transactions", controllers.GetAllTransactions)
		admin.GET("/total/revenue", controllers.GetPlatformRevenue)
		admin.GET("/transactions/export/excel", controllers.ExportAllTransactionsExcel)
		admin.GET("/transactions/export/csv", controllers.ExportAllTransactionsCSV)
	}

	return r
}
