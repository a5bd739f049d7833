package log

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger expõe apenas o que a API e os serviços usam do logrus
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithContext(ctx context.Context) Logger

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
}

type contextKey string

const requestScopeKey contextKey = "request_scope"

const (
	FieldCorrelationID = "correlation_id"
	FieldRoute         = "route"
	FieldWorkspaceID   = "workspace_id"
	FieldUserID        = "user_id"
)

// requestScope acumula os campos conhecidos ao longo da requisição.
// Middlewares e handlers internos preenchem; o LoggingMiddleware lê no final.
type requestScope struct {
	mu     sync.RWMutex
	fields Fields
}

func (s *requestScope) set(key string, value interface{}) {
	s.mu.Lock()
	s.fields[key] = value
	s.mu.Unlock()
}

func (s *requestScope) snapshot() Fields {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields := make(Fields, len(s.fields))
	for k, v := range s.fields {
		fields[k] = v
	}
	return fields
}

func scopeFrom(ctx context.Context) *requestScope {
	if ctx == nil {
		return nil
	}
	scope, _ := ctx.Value(requestScopeKey).(*requestScope)
	return scope
}

type logger struct {
	entry *logrus.Entry
}

// L é uma instância global de Logger para uso direto
var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

// IsDevelopment retorna verdadeiro se estamos em ambiente de desenvolvimento
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}

func (l *logger) WithField(key string, value interface{}) Logger {
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

// WithContext anexa correlation_id, rota, workspace e usuário já registrados na requisição
func (l *logger) WithContext(ctx context.Context) Logger {
	scope := scopeFrom(ctx)
	if scope == nil {
		return l
	}
	return l.WithFields(scope.snapshot())
}

func (l *logger) Debug(args ...interface{}) {
	l.entry.Debug(args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *logger) Info(args ...interface{}) {
	l.entry.Info(args...)
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *logger) Warn(args ...interface{}) {
	l.entry.Warn(args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *logger) Error(args ...interface{}) {
	l.entry.Error(args...)
}

// WithCorrelationID abre o escopo de log da requisição com um novo ID de correlação
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.New().String()
	scope := &requestScope{fields: Fields{FieldCorrelationID: correlationID}}
	return context.WithValue(ctx, requestScopeKey, scope), correlationID
}

// GetCorrelationID obtém o ID de correlação do contexto
func GetCorrelationID(ctx context.Context) string {
	scope := scopeFrom(ctx)
	if scope == nil {
		return ""
	}

	scope.mu.RLock()
	defer scope.mu.RUnlock()
	correlationID, _ := scope.fields[FieldCorrelationID].(string)
	return correlationID
}

// AddRequestField registra um campo no escopo da requisição. Sem escopo não faz nada.
func AddRequestField(ctx context.Context, key string, value interface{}) {
	if scope := scopeFrom(ctx); scope != nil {
		scope.set(key, value)
	}
}

// RequestFields devolve uma cópia dos campos registrados na requisição
func RequestFields(ctx context.Context) Fields {
	scope := scopeFrom(ctx)
	if scope == nil {
		return Fields{}
	}
	return scope.snapshot()
}

// ForContext cria um logger com os campos da requisição
func ForContext(ctx context.Context) Logger {
	return L.WithContext(ctx)
}
