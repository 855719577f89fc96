package dto

import "time"

type PurchaseRequestDTO struct {
	Utorid       string  `json:"utorid" example:"clive123"`
	Spent        float64 `json:"spent" example:"25.00"`
	PromotionIDs []int   `json:"promotionIds"`
	Remark       string  `json:"remark"`
}

type PurchaseResponseDTO struct {
	TransactionID       int    `json:"id"`
	Earned              int    `json:"earned" example:"100"`
	Status              string `json:"status" example:"APPROVED"`
	AppliedPromotionIDs []int  `json:"promotionIds"`
}

type AdjustmentRequestDTO struct {
	Utorid    string `json:"utorid" example:"clive123"`
	Amount    int    `json:"amount" example:"-40"`
	RelatedID int    `json:"relatedId" example:"17"`
	Remark    string `json:"remark"`
}

type RedemptionRequestDTO struct {
	Amount int    `json:"amount" example:"50"`
	Remark string `json:"remark"`
}

type TransferRequestDTO struct {
	Amount int    `json:"amount" example:"30"`
	Remark string `json:"remark"`
}

type TransferResponseDTO struct {
	TransferID    int `json:"id"`
	SenderTxnID   int `json:"senderTransactionId"`
	ReceiverTxnID int `json:"receiverTransactionId"`
	Amount        int `json:"amount"`
}

type SuspiciousRequestDTO struct {
	Suspicious bool `json:"suspicious"`
}

type SuspiciousResponseDTO struct {
	TransactionID int  `json:"id"`
	Held          bool `json:"suspicious"`
	NewBalance    int  `json:"newBalance"`
}

type TransactionResponseDTO struct {
	ID                int       `json:"id"`
	UserID            int       `json:"userId"`
	Type              string    `json:"type"`
	Points            int       `json:"points"`
	Spent             float64   `json:"spent,omitempty"`
	Status            string    `json:"status"`
	NeedsVerification bool      `json:"suspicious"`
	RelatedID         *int      `json:"relatedId,omitempty"`
	ProcessedBy       *int      `json:"processedBy,omitempty"`
	Remark            string    `json:"remark,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}
