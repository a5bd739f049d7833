package exporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/vfg2006/traffic-manager-kpi/infrastructure/storage"
	"github.com/vfg2006/traffic-manager-kpi/internal/domain"
	"github.com/vfg2006/traffic-manager-kpi/internal/usecases/reporting"
	"github.com/vfg2006/traffic-manager-kpi/pkg/apiErrors"
	"github.com/vfg2006/traffic-manager-kpi/pkg/log"
	"github.com/vfg2006/traffic-manager-kpi/pkg/utils"
)

type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
)

var ErrInvalidFormat = errors.New("formato de exportação inválido")

// ParseFormat aceita "csv", "md" e "markdown"; vazio vira CSV
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}

	return "", reporting.NewReportError(ErrInvalidFormat, apiErrors.ErrInvalidFormat,
		fmt.Sprintf("formato '%s' não suportado, use csv ou md", value))
}

func (f Format) ContentType() string {
	if f == FormatMarkdown {
		return "text/markdown; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

// ReportFile é o relatório gerado. Content só é preenchido quando não há upload.
type ReportFile struct {
	Key         string `json:"key,omitempty"`
	URL         string `json:"url,omitempty"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}

func (r *ReportFile) Uploaded() bool {
	return r.URL != ""
}

type Exporter interface {
	Export(ctx context.Context, filters domain.KPIFilters, format Format) (*ReportFile, error)
}

type Service struct {
	reporter reporting.Reporter
	uploader storage.Uploader
	now      func() time.Time
}

// NewService cria o exportador. Com uploader nil o conteúdo é devolvido na resposta.
func NewService(reporter reporting.Reporter, uploader storage.Uploader) *Service {
	return &Service{
		reporter: reporter,
		uploader: uploader,
		now:      time.Now,
	}
}

func (s *Service) Export(ctx context.Context, filters domain.KPIFilters, format Format) (*ReportFile, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"workspace_id": filters.WorkspaceID,
		"format":       format,
	})

	filters.Level = domain.LevelCampaign
	filters.Period = domain.PeriodTotal

	kpis, err := s.reporter.GetKPIs(ctx, filters)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar KPIs para exportação")
	}

	content, err := s.render(ctx, filters, kpis, format)
	if err != nil {
		return nil, err
	}

	fileID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar identificador do relatório")
	}

	fileName := fmt.Sprintf("%s-%s.%s", s.now().Format("2006-01-02"), fileID, format)
	report := &ReportFile{
		Key:         fmt.Sprintf("reports/%s/%s", filters.WorkspaceID, fileName),
		FileName:    fileName,
		ContentType: format.ContentType(),
	}

	if s.uploader == nil {
		report.Content = content
		logger.Debugf("Relatório gerado com %d campanhas (%d bytes)", len(kpis), len(content))
		return report, nil
	}

	url, err := s.uploader.Upload(ctx, report.Key, report.ContentType, content)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao enviar relatório para o storage")
	}
	report.URL = url

	logger.Infof("Relatório enviado para %s", report.Key)

	return report, nil
}

func (s *Service) render(ctx context.Context, filters domain.KPIFilters, kpis []domain.AggregatedKPI, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return renderCSV(kpis)
	case FormatMarkdown:
		summary, err := s.reporter.GetSummary(ctx, filters)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao buscar resumo para exportação")
		}
		return renderMarkdown(kpis, *summary, filters), nil
	}

	return nil, reporting.NewReportError(ErrInvalidFormat, apiErrors.ErrInvalidFormat, string(format))
}
