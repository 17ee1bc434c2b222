package submitclaim

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"enre-reclamos/internal/common/config"
	"enre-reclamos/internal/common/errors"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/common/validation"
	"enre-reclamos/internal/models"
)

// Fixed values the remote form expects alongside the operator fields.
const (
	formDocumentID = "DFBAB062214A523A03258AC00070D3EE"
	formPathInfo   = "/reclamosweb.nsf/Reclamo"
	formRemoteAddr = "198.147.22.204"
	formBrowser    = "Netscape"
	formClick      = "8325752000514A90.c0e15788bd73314603258247006adc9a/$Body/0.70"
)

// Submitter posts the claim form, or returns the canned page in dry-run.
type Submitter struct {
	config *Config
	poster FormPoster
	logger logger.Logger
}

func NewSubmitter(cfg *Config, poster FormPoster, log logger.Logger) *Submitter {
	return &Submitter{config: cfg, poster: poster, logger: log}
}

// BuildForm assembles the field set for attempt.
func BuildForm(attempt models.ClaimAttempt) url.Values {
	meter := attempt.MeterNumber
	suffix := meter
	if len(meter) > 3 {
		suffix = meter[len(meter)-3:]
	}

	return url.Values{
		"ErroresCampo":    {""},
		"Medidor":         {meter},
		"Empresa":         {attempt.Distributor},
		"IDCliente":       {attempt.CustomerNumber},
		"MedidorW":        {suffix},
		"NRecWeb":         {""},
		"Mas":             {"no"},
		"ID":              {formDocumentID},
		"Errores":         {""},
		"Fin":             {""},
		"Procesado":       {""},
		"Fecha":           {attempt.StartedAt.In(models.ArgentinaTime).Format("01/02/2006")},
		"HTTP_COOKIE":     {""},
		"HTTP_REFERER":    {""},
		"HTTP_USER_AGENT": {config.DefaultUserAgent},
		"PATH_INFO":       {formPathInfo},
		"REMOTE_ADDR":     {formRemoteAddr},
		"REMOTE_USER":     {""},
		"Explorador":      {formBrowser},
		"__Click":         {formClick},
	}
}

// Submit returns the raw page. fromNetwork is false for dry-run.
func (s *Submitter) Submit(ctx context.Context, attempt models.ClaimAttempt) (body string, fromNetwork bool, err error) {
	if s.config.DryRun {
		s.logger.Info("dry run, using canned response", nil)
		return CannedSuccessBody(), false, nil
	}

	fields := BuildForm(attempt)
	if err := validateForm(fields); err != nil {
		return "", false, err
	}

	start := time.Now()
	resp, err := s.poster.PostForm(ctx, s.config.FormURL, fields)
	if err != nil {
		return "", true, errors.NewSubmissionUnavailableError(err)
	}

	fieldsLog := map[string]interface{}{
		"status":     resp.StatusCode,
		"bodyBytes":  len(resp.Body),
		"durationMs": time.Since(start).Milliseconds(),
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Warn("claim form returned non-success status", fieldsLog)
	} else {
		s.logger.Debug("claim form responded", fieldsLog)
	}

	return resp.Body, true, nil
}

func validateForm(fields url.Values) error {
	doc := make(map[string]interface{}, len(fields))
	for k := range fields {
		doc[k] = fields.Get(k)
	}

	result, err := validation.Validate(doc, GetFormSchema())
	if err != nil {
		return errors.NewInvalidFormPayloadError(err.Error())
	}
	if !result.Valid {
		return errors.NewInvalidFormPayloadError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}

func describeAttempt(a models.ClaimAttempt) string {
	return fmt.Sprintf("%s/%s", a.Distributor, a.CustomerNumber)
}
