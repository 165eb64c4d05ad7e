package view

type DbCredentials struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}
