package transfer

import (
	"testing"

	"bookie/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatTransferResult(t *testing.T) {
	msg := FormatTransferResult(&models.TransferResult{
		Amount:        2000,
		Fee:           100,
		Received:      1900,
		SenderBalance: 3000,
		RecipientID:   "u2",
	}, "Rukia")

	assert.Equal(t, "Sent **2,000** Reiatsu to **Rukia** (fee 100, they received 1,900). Your balance: **3,000**", msg)
}
