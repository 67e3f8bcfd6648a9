// Package order renders an order snapshot as the text message read by the restaurant.
package order

import (
	"fmt"
	"strings"

	"github.com/nikolayk812/broka-order/internal/domain"
)

const (
	separator = "━━━━━━━━━━━━━━━━━━━━"

	dateLayout = "02/01/2006"
	timeLayout = "15:04"
)

// Format is deterministic for a given snapshot. The grand total is taken from the
// snapshot as is. A snapshot without lines is a programming error and panics.
func Format(s domain.OrderSnapshot) string {
	if len(s.Lines) == 0 {
		panic("order: formatting an order without lines")
	}

	var b strings.Builder

	b.WriteString("🍔 *NOVO PEDIDO - BROKA BURGUER*\n\n")

	fmt.Fprintf(&b, "📅 *Data:* %s\n", s.SubmittedAt.Format(dateLayout))
	fmt.Fprintf(&b, "🕐 *Horário:* %s\n\n", s.SubmittedAt.Format(timeLayout))

	b.WriteString("📋 *ITENS DO PEDIDO:*\n")
	b.WriteString(separator + "\n")
	for i, line := range s.Lines {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, line.Item.Name)
		fmt.Fprintf(&b, "   Qtd: %dx\n", line.Quantity)
		if len(line.AddOns) > 0 {
			fmt.Fprintf(&b, "   Complementos: %s\n", strings.Join(line.AddOnNames(), ", "))
		}
		fmt.Fprintf(&b, "   Valor: %s\n\n", domain.LineTotal(line))
	}

	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "💰 *TOTAL: %s*\n\n", s.Total)

	b.WriteString("📍 *ENDEREÇO DE ENTREGA:*\n")
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "🏘️ Bairro: %s\n", s.Address.Bairro)
	fmt.Fprintf(&b, "🛣️ Rua: %s\n", s.Address.Rua)
	if s.Address.Numero != "" {
		fmt.Fprintf(&b, "🏠 Número: %s\n", s.Address.Numero)
	}
	if s.Address.PontoReferencia != "" {
		fmt.Fprintf(&b, "📌 Referência: %s\n", s.Address.PontoReferencia)
	}

	b.WriteString("\n" + separator + "\n")
	b.WriteString("✅ *Pedido enviado automaticamente pelo site*")

	return b.String()
}
