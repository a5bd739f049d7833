package exporting

import (
	"fmt"
	"math"

	"github.com/vfg2006/traffic-manager-kpi/pkg/utils"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const notAvailable = "N/A"

// brazilianFormatter formata números no padrão pt-BR ("." para milhar e "," para decimais)
type brazilianFormatter struct {
	printer *message.Printer
}

func newBrazilianFormatter() *brazilianFormatter {
	return &brazilianFormatter{printer: message.NewPrinter(language.BrazilianPortuguese)}
}

func (f *brazilianFormatter) Currency(value float64) string {
	return "R$ " + f.printer.Sprintf("%.2f", utils.RoundWithTwoDecimalPlace(value))
}

func (f *brazilianFormatter) OptionalCurrency(value *float64) string {
	if value == nil {
		return notAvailable
	}
	return f.Currency(*value)
}

func (f *brazilianFormatter) Integer(value int64) string {
	return f.printer.Sprintf("%d", value)
}

func (f *brazilianFormatter) Decimal(value float64) string {
	if value == math.Trunc(value) {
		return f.Integer(int64(value))
	}
	return f.printer.Sprintf("%.2f", utils.RoundWithTwoDecimalPlace(value))
}

func (f *brazilianFormatter) Percent(value *float64) string {
	if value == nil {
		return notAvailable
	}
	return f.printer.Sprintf("%.2f", utils.RoundWithTwoDecimalPlace(*value)) + "%"
}

// Roas mantém o ponto decimal: "2.35x"
func (f *brazilianFormatter) Roas(value *float64) string {
	if value == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2fx", utils.RoundWithTwoDecimalPlace(*value))
}
