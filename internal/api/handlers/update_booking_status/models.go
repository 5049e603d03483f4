package update_booking_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
	// ManualOverride позволяет менеджеру пройти проверку полной оплаты
	// при наличии остатка; причина обязательна для аудита
	ManualOverride bool   `json:"manualOverride,omitempty"`
	OverrideReason string `json:"overrideReason,omitempty"`
}
