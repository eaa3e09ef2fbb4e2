package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
	"github.com/nikoly240702/tender-sniper/internal/matching"
)

func TestExporter_AppendTender_NilClientIsNoop(t *testing.T) {
	e := NewExporter(nil, "sheet-1")

	tn, err := tender.NewTender("1", "Поставка серверов", "https://zakupki.gov.ru/1", time.Now())
	require.NoError(t, err)

	err = e.AppendTender(context.Background(), "user-1", tn, matching.Match{Score: 90})
	require.NoError(t, err)
}

func TestExporter_AppendTender_NoSpreadsheetIDIsNoop(t *testing.T) {
	e := NewExporter(nil, "")

	tn, err := tender.NewTender("1", "Поставка серверов", "https://zakupki.gov.ru/1", time.Now())
	require.NoError(t, err)

	err = e.AppendTender(context.Background(), "user-1", tn, matching.Match{Score: 90})
	require.NoError(t, err)
}

func TestClient_Configured_NilIsFalse(t *testing.T) {
	var c *Client
	require.False(t, c.Configured())
}
