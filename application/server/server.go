/*
 * © 2026 Snyk Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package server

import (
	"context"
	"os"
	"strconv"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"
	"github.com/rs/zerolog"
	sglsp "github.com/sourcegraph/go-lsp"

	"github.com/snyk/sonar-ls/application/config"
	"github.com/snyk/sonar-ls/application/di"
	"github.com/snyk/sonar-ls/domain/ide/converter"
	"github.com/snyk/sonar-ls/domain/ide/host"
	"github.com/snyk/sonar-ls/domain/ide/issueview"
	"github.com/snyk/sonar-ls/internal/lsp"
	"github.com/snyk/sonar-ls/internal/uri"
)

const serverName = "sonar-ls"

func Start(c *config.Config) {
	var srv *jrpc2.Server

	handlers := handler.Map{}
	srv = jrpc2.NewServer(handlers, &jrpc2.ServerOptions{
		RPCLog:    RPCLogger{c},
		AllowPush: true,
	})

	logger := c.Logger().With().Str("method", "server.Start").Logger()
	di.Init(c)
	initHandlers(c, srv, handlers)

	logger.Info().Msg("Starting up...")
	srv = srv.Start(channel.Header("")(os.Stdin, os.Stdout))

	status := srv.WaitStatus()
	if status.Err != nil {
		logger.Err(status.Err).Msg("server stopped because of error")
	} else {
		logger.Debug().Msgf("server stopped gracefully stopped=%v closed=%v", status.Stopped, status.Closed)
	}
}

const textDocumentDidOpenOperation = "textDocument/didOpen"
const textDocumentDidSaveOperation = "textDocument/didSave"

func initHandlers(c *config.Config, srv *jrpc2.Server, handlers handler.Map) {
	handlers["initialize"] = initializeHandler(c, srv)
	handlers["initialized"] = initializedHandler(c)
	handlers["textDocument/didChange"] = textDocumentDidChangeHandler(c)
	handlers["textDocument/didClose"] = textDocumentDidCloseHandler(c)
	handlers[textDocumentDidOpenOperation] = textDocumentDidOpenHandler(c)
	handlers[textDocumentDidSaveOperation] = textDocumentDidSaveHandler(c)
	handlers["textDocument/willSave"] = noOpHandler(c)
	handlers["shutdown"] = shutdown(c)
	handlers["exit"] = exit(c, srv)
	initSonarHandlers(c, handlers)
}

func initializeHandler(c *config.Config, srv *jrpc2.Server) handler.Func {
	return handler.New(func(ctx context.Context, params lsp.InitializeParams) (any, error) {
		logger := c.Logger().With().Str("method", "initializeHandler").Logger()
		logger.Info().Interface("clientInfo", params.ClientInfo).Msg("initializing")

		applySettings(c, params.InitializationOptions)
		root := params.RootPath
		if params.RootURI != "" {
			root = uri.PathFromUri(params.RootURI)
		}
		if root != "" {
			c.SetProjectRoot(root)
			di.Session().SetAnalysisPlugin(host.NewPathPlugin(root))
		}

		registerNotifier(c, srv)
		registerSessionListener(c, srv)

		go func() {
			// The context provided by the JSON-RPC server is canceled once a new message is being processed,
			// so we don't want to propagate it to functions that start background operations
			if err := di.Session().Initialize(context.Background()); err != nil {
				logger.Err(err).Msg("could not initialize the session")
			}
		}()

		return lsp.InitializeResult{
			ServerInfo: lsp.ServerInfo{
				Name:    serverName,
				Version: config.Version,
			},
			Capabilities: lsp.ServerCapabilities{
				TextDocumentSync: &sglsp.TextDocumentSyncOptionsOrKind{
					Options: &sglsp.TextDocumentSyncOptions{
						OpenClose: true,
						Change:    sglsp.TDSKFull,
						Save:      &sglsp.SaveOptions{IncludeText: true},
					},
				},
			},
		}, nil
	})
}

func applySettings(c *config.Config, settings lsp.Settings) {
	logger := c.Logger().With().Str("method", "applySettings").Logger()
	if settings.ServerURL != "" {
		c.SetServerURL(settings.ServerURL)
	}
	if settings.Token != "" {
		c.SetToken(settings.Token)
	}
	if settings.ProjectKey != "" {
		c.SetProjectKey(settings.ProjectKey)
	}
	if settings.AnalysisMode != "" {
		mode, err := issueview.ParseMode(settings.AnalysisMode)
		if err != nil {
			logger.Warn().Err(err).Msg("ignoring analysis mode")
		} else {
			c.SetAnalysisMode(settings.AnalysisMode)
			di.Session().SetAnalysisMode(mode)
		}
	}
	if settings.AnalysisType != "" {
		analysisType, err := issueview.ParseType(settings.AnalysisType)
		if err != nil {
			logger.Warn().Err(err).Msg("ignoring analysis type")
		} else {
			c.SetAnalysisType(settings.AnalysisType)
			di.Session().SetAnalysisType(analysisType)
		}
	}
	applyBool(&logger, "coverageInEditor", settings.CoverageInEditor, c.SetCoverageInEditorEnabled)
	applyBool(&logger, "disableEditorTags", settings.DisableEditorTags, c.SetEditorTagsDisabled)
	applyBool(&logger, "sendErrorReports", settings.SendErrorReports, c.SetErrorReportingEnabled)
}

func applyBool(logger *zerolog.Logger, name string, value string, setter func(bool)) {
	if value == "" {
		return
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logger.Warn().Err(err).Str("setting", name).Msg("couldn't parse setting")
		return
	}
	setter(parsed)
}

func initializedHandler(c *config.Config) handler.Func {
	return handler.New(func(ctx context.Context, params lsp.InitializedParams) (any, error) {
		c.Logger().Debug().Str("method", "initializedHandler").Msg("client is ready")
		return nil, nil
	})
}

func shutdown(c *config.Config) jrpc2.Handler {
	return handler.New(func(ctx context.Context) (any, error) {
		logger := c.Logger().With().Str("method", "Shutdown").Logger()
		logger.Info().Msg("ENTERING")
		defer logger.Info().Msg("RETURNING")
		di.ErrorReporter().FlushErrorReporting()

		disposeSessionListener()
		di.Notifier().DisposeListener()
		return nil, nil
	})
}

func exit(c *config.Config, srv *jrpc2.Server) jrpc2.Handler {
	return handler.New(func(_ context.Context) (any, error) {
		logger := c.Logger().With().Str("method", "Exit").Logger()
		logger.Info().Msg("ENTERING")
		logger.Info().Msg("Flushing error reporting...")
		di.ErrorReporter().FlushErrorReporting()
		logger.Info().Msg("Stopping server...")
		srv.Stop()
		return nil, nil
	})
}

func textDocumentDidOpenHandler(c *config.Config) jrpc2.Handler {
	return handler.New(func(_ context.Context, params sglsp.DidOpenTextDocumentParams) (any, error) {
		filePath := uri.PathFromUri(params.TextDocument.URI)
		logger := c.Logger().With().Str("method", "TextDocumentDidOpenHandler").Str("documentURI", filePath).Logger()
		logger.Info().Msg("Receiving")

		di.Documents().Open(filePath, params.TextDocument.Text)
		go refresh(&logger, filePath)
		return nil, nil
	})
}

func textDocumentDidChangeHandler(c *config.Config) jrpc2.Handler {
	return handler.New(func(_ context.Context, params sglsp.DidChangeTextDocumentParams) (any, error) {
		filePath := uri.PathFromUri(params.TextDocument.URI)
		c.Logger().Trace().Str("method", "TextDocumentDidChangeHandler").Str("documentURI", filePath).Msg("RECEIVING")

		if len(params.ContentChanges) == 0 {
			return nil, nil
		}
		// full sync: the last change carries the whole document
		di.Documents().Change(filePath, params.ContentChanges[len(params.ContentChanges)-1].Text)
		di.Session().DocumentChanged(filePath)
		return nil, nil
	})
}

func textDocumentDidSaveHandler(c *config.Config) jrpc2.Handler {
	return handler.New(func(_ context.Context, params sglsp.DidSaveTextDocumentParams) (any, error) {
		filePath := uri.PathFromUri(params.TextDocument.URI)
		logger := c.Logger().With().Str("method", "TextDocumentDidSaveHandler").Str("documentURI", filePath).Logger()
		logger.Debug().Msg("Receiving")

		di.Session().DocumentSaved(filePath)
		go refresh(&logger, filePath)
		return nil, nil
	})
}

func textDocumentDidCloseHandler(c *config.Config) jrpc2.Handler {
	return handler.New(func(_ context.Context, params sglsp.DidCloseTextDocumentParams) (any, error) {
		filePath := uri.PathFromUri(params.TextDocument.URI)
		c.Logger().Debug().Str("method", "TextDocumentDidCloseHandler").Str("documentURI", filePath).Msg("Receiving")

		di.Documents().Close(filePath)
		di.Session().DocumentClosed(filePath)
		di.Notifier().Send(converter.ToPublishDiagnosticsParams(filePath, nil, ""))
		return nil, nil
	})
}

func refresh(logger *zerolog.Logger, filePath string) {
	if err := di.Session().RefreshForResource(context.Background(), filePath); err != nil {
		logger.Debug().Err(err).Msg("refresh skipped")
	}
}

func noOpHandler(c *config.Config) jrpc2.Handler {
	return handler.New(func(_ context.Context, params sglsp.DidCloseTextDocumentParams) (any, error) {
		c.Logger().Debug().Str("method", "NoOpHandler").Interface("params", params).Msg("RECEIVING")
		return nil, nil
	})
}

type RPCLogger struct {
	c *config.Config
}

func (r RPCLogger) LogRequest(_ context.Context, req *jrpc2.Request) {
	r.c.Logger().Debug().Msgf("Incoming JSON-RPC request. Method=%s. ID=%s. Is notification=%v.",
		req.Method(),
		req.ID(),
		req.IsNotification())
}

func (r RPCLogger) LogResponse(_ context.Context, rsp *jrpc2.Response) {
	logger := r.c.Logger()
	if rsp.Error() != nil {
		logger.Err(rsp.Error()).Interface("rsp", *rsp).Msg("Outgoing JSON-RPC response error")
	}
	logger.Debug().Msgf("Outgoing JSON-RPC response. ID=%s", rsp.ID())
}
