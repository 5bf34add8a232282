package main

// @title Medi-Plans API
// @version 1.0
// @description Medicare plan finder: popup pages, message relay and page scanner on top of the plan lookup API
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /
