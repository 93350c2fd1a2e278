package models

// Draft represents a fully rendered message ready to be created in the user's mailbox
type Draft struct {
	To      string
	Subject string
	Body    string
}
