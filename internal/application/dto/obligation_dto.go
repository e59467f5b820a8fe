package dto

// GenerateObligationsRequest body para POST /api/fiscal/obligations/generate.
// Codes vazio = todas as obrigações conhecidas.
type GenerateObligationsRequest struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Codes []string `json:"codes,omitempty"`
}

// UpdateObligationStatusRequest body para PUT /api/fiscal/obligations/:id/status.
// Os campos extras são opcionais e validados contra a transição pedida.
type UpdateObligationStatusRequest struct {
	Status        string `json:"status"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
	FileName      string `json:"file_name,omitempty"`
	FileContent   string `json:"file_content,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// ObligationResponse obrigação em respostas.
type ObligationResponse struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	Code          string `json:"code"`
	Name          string `json:"name,omitempty"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	DueDate       string `json:"due_date"` // AAAA-MM-DD
	Status        string `json:"status"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
	FileName      string `json:"file_name,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// CalendarEntryResponse linha do calendário fiscal. Para obrigações ainda não
// geradas no período, Status é NOT_GENERATED e ObligationID vai vazio.
type CalendarEntryResponse struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Periodicity  string `json:"periodicity"`
	DueDate      string `json:"due_date"`
	Status       string `json:"status"`
	ObligationID string `json:"obligation_id,omitempty"`
}
