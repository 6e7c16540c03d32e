package client

import (
	"net/http"

	"anoa.com/leadercircle/internal/config"
	authController "anoa.com/leadercircle/internal/modules/auth/controller"
	authGateway "anoa.com/leadercircle/internal/modules/auth/gateway"
	authRepository "anoa.com/leadercircle/internal/modules/auth/repository"
	connectionController "anoa.com/leadercircle/internal/modules/connection/controller"
	connectionGateway "anoa.com/leadercircle/internal/modules/connection/gateway"
	connectionRepository "anoa.com/leadercircle/internal/modules/connection/repository"
	eventController "anoa.com/leadercircle/internal/modules/event/controller"
	eventGateway "anoa.com/leadercircle/internal/modules/event/gateway"
	eventRepository "anoa.com/leadercircle/internal/modules/event/repository"
	messageController "anoa.com/leadercircle/internal/modules/message/controller"
	messageGateway "anoa.com/leadercircle/internal/modules/message/gateway"
	messageRepository "anoa.com/leadercircle/internal/modules/message/repository"
	profileController "anoa.com/leadercircle/internal/modules/profile/controller"
	profileGateway "anoa.com/leadercircle/internal/modules/profile/gateway"
	profileRepository "anoa.com/leadercircle/internal/modules/profile/repository"
	resourceController "anoa.com/leadercircle/internal/modules/resource/controller"
	resourceGateway "anoa.com/leadercircle/internal/modules/resource/gateway"
	resourceRepository "anoa.com/leadercircle/internal/modules/resource/repository"
	userController "anoa.com/leadercircle/internal/modules/user/controller"
	userGateway "anoa.com/leadercircle/internal/modules/user/gateway"
	userRepository "anoa.com/leadercircle/internal/modules/user/repository"
	"anoa.com/leadercircle/internal/transport"
	"anoa.com/leadercircle/pkg/logger"
)

// Repositories are shared by every controller built from one App.
type Repositories struct {
	Auth       authRepository.AuthRepository
	User       userRepository.UserRepository
	Profile    profileRepository.ProfileRepository
	Event      eventRepository.EventRepository
	Resource   resourceRepository.ResourceRepository
	Connection connectionRepository.ConnectionRepository
	Message    messageRepository.MessageRepository
}

// App is the data layer a UI binds to: one transport, one token, one
// repository per resource and the session controller. Screen controllers
// are created per screen with the New* methods and closed with the screen.
type App struct {
	Transport    *transport.Client
	Repositories Repositories
	Auth         *authController.Controller
}

// Option adjusts how New builds the transport.
type Option func(*transport.Config)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(tc *transport.Config) {
		tc.HTTPClient = c
	}
}

// WithTokens shares an existing token holder, e.g. one restored from storage.
func WithTokens(tokens *transport.TokenHolder) Option {
	return func(tc *transport.Config) {
		tc.Tokens = tokens
	}
}

func New(cfg *config.Config, opts ...Option) *App {
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
	})

	tc := transport.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger.WithField("component", "transport"),
	}
	for _, opt := range opts {
		opt(&tc)
	}
	api := transport.NewClient(tc)

	repos := Repositories{
		Auth:       authRepository.NewAuthRepository(authGateway.NewGateway(api), api.Tokens()),
		User:       userRepository.NewUserRepository(userGateway.NewGateway(api)),
		Profile:    profileRepository.NewProfileRepository(profileGateway.NewGateway(api)),
		Event:      eventRepository.NewEventRepository(eventGateway.NewGateway(api)),
		Resource:   resourceRepository.NewResourceRepository(resourceGateway.NewGateway(api)),
		Connection: connectionRepository.NewConnectionRepository(connectionGateway.NewGateway(api)),
		Message:    messageRepository.NewMessageRepository(messageGateway.NewGateway(api)),
	}

	return &App{
		Transport:    api,
		Repositories: repos,
		Auth:         authController.NewController(repos.Auth),
	}
}

// CurrentUserID is the signed-in user's id, or "".
func (a *App) CurrentUserID() string {
	return a.Auth.CurrentUserID()
}

func (a *App) NewDirectory() *userController.Controller {
	return userController.NewController(a.Repositories.User)
}

func (a *App) NewProfile() *profileController.Controller {
	return profileController.NewController(a.Repositories.Profile)
}

func (a *App) NewEvents() *eventController.Controller {
	return eventController.NewController(a.Repositories.Event, a.CurrentUserID)
}

func (a *App) NewResources() *resourceController.Controller {
	return resourceController.NewController(a.Repositories.Resource)
}

func (a *App) NewConnections() *connectionController.Controller {
	return connectionController.NewController(a.Repositories.Connection)
}

func (a *App) NewMessages() *messageController.Controller {
	return messageController.NewController(a.Repositories.Message, a.CurrentUserID)
}

// Close ends the session controller. Screen controllers are closed by their owners.
func (a *App) Close() {
	a.Auth.Close()
}
