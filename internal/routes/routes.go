package routes

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/booknest/internal/apperror"
	"github.com/haguru/booknest/internal/auth"
	"github.com/haguru/booknest/internal/catalog"
	"github.com/haguru/booknest/internal/interfaces"
	"github.com/haguru/booknest/internal/models"
	"github.com/haguru/booknest/internal/models/dto"

	structValidator "github.com/go-playground/validator/v10"
)

// Route dispatches the query/mutation operations exposed on the single
// /api endpoint. Identity is derived once per request from whatever token
// the request carries; each operation decides whether it requires one.
type Route struct {
	Metrics     interfaces.Metrics
	UserService interfaces.UserService
	Catalog     *catalog.Client
	PrivateKey  *ecdsa.PrivateKey
	Logger      interfaces.Logger
	validator   *structValidator.Validate
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, userService interfaces.UserService, catalogClient *catalog.Client,
	privateKey *ecdsa.PrivateKey, logger interfaces.Logger, validator *structValidator.Validate,
) *Route {
	return &Route{
		Metrics:     metrics,
		UserService: userService,
		Catalog:     catalogClient,
		PrivateKey:  privateKey,
		Logger:      logger,
		validator:   validator,
	}
}

// API handles all query/mutation requests.
func (r *Route) API(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		r.errorResponse(w, fmt.Errorf("method %s not allowed", req.Method), ErrMethodNotAllowed)
		return
	}

	if req.Header.Get(ContentType) != ContentTypeJson {
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, fmt.Errorf("invalid content-type: %s", req.Header.Get(ContentType)), ErrInvalidContentType)
		return
	}

	apiRequest := &dto.APIRequest{}
	if err := json.NewDecoder(req.Body).Decode(apiRequest); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, err, ErrInvalidRequestBody)
		return
	}

	if err := r.validator.Struct(apiRequest); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, fmt.Errorf("invalid request: %s", err), ErrValidationFailed)
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounterVec(APIRequestsTotal, apiRequest.Operation)
	}

	// Invalid or missing tokens degrade to an anonymous request here;
	// operations that need identity reject it below.
	identity := auth.IdentityFromRequest(req, apiRequest.Token, &r.PrivateKey.PublicKey)

	startTime := time.Now()
	result, err := r.dispatch(req.Context(), apiRequest.Operation, apiRequest.Params, identity)
	duration := time.Since(startTime).Seconds()

	if r.Metrics != nil {
		r.Metrics.ObserveHistogramVec(APIDurationSeconds, duration, apiRequest.Operation)
	}

	if err != nil {
		r.writeError(w, apiRequest.Operation, err)
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounterVec(APISuccessTotal, apiRequest.Operation)
	}

	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		r.Logger.Error(ErrFailedToEncodeResponse, "operation", apiRequest.Operation, "error", err)
	}
}

func (r *Route) dispatch(ctx context.Context, operation string, params json.RawMessage, identity *auth.Claims) (interface{}, error) {
	switch operation {
	case OpListUsers:
		return r.listUsers(ctx)
	case OpGetUser:
		return r.getUser(ctx, params)
	case OpGetMe:
		return r.getMe(ctx, identity)
	case OpListSavedBooks:
		return r.listSavedBooks(ctx, identity)
	case OpRegister:
		return r.register(ctx, params)
	case OpLogin:
		return r.login(ctx, params)
	case OpSaveBook:
		return r.saveBook(ctx, params)
	case OpRemoveBook:
		return r.removeBook(ctx, params)
	case OpSearchBooks:
		return r.searchBooks(ctx, params)
	default:
		return nil, apperror.NewValidation("operation", ErrUnknownOperation)
	}
}

func (r *Route) listUsers(ctx context.Context) (interface{}, error) {
	users, err := r.UserService.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return dto.UsersResponseDTO{Users: dto.FromUsers(users)}, nil
}

func (r *Route) getUser(ctx context.Context, params json.RawMessage) (interface{}, error) {
	request := &dto.GetUserRequestDTO{}
	if err := r.decodeParams(params, request); err != nil {
		return nil, err
	}

	user, err := r.UserService.GetUser(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFound(ErrUserNotFound)
	}
	return dto.UserResponseDTO{User: dto.FromUser(user)}, nil
}

func (r *Route) getMe(ctx context.Context, identity *auth.Claims) (interface{}, error) {
	if identity == nil {
		return nil, apperror.NewAuthentication(ErrNotAuthenticated)
	}

	user, err := r.UserService.GetUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFound(ErrUserNotFound)
	}
	return dto.UserResponseDTO{User: dto.FromUser(user)}, nil
}

func (r *Route) listSavedBooks(ctx context.Context, identity *auth.Claims) (interface{}, error) {
	if identity == nil {
		return nil, apperror.NewAuthentication(ErrNotAuthenticated)
	}

	user, err := r.UserService.GetUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFound(ErrUserNotFound)
	}
	return dto.SavedBooksResponseDTO{SavedBooks: dto.FromUser(user).SavedBooks}, nil
}

func (r *Route) register(ctx context.Context, params json.RawMessage) (interface{}, error) {
	request := &dto.RegisterRequestDTO{}
	if err := r.decodeParams(params, request); err != nil {
		return nil, err
	}

	user, err := r.UserService.RegisterUser(ctx, request.Username, request.Email, request.Password)
	if err != nil {
		return nil, err
	}

	return r.authResponse(user)
}

func (r *Route) login(ctx context.Context, params json.RawMessage) (interface{}, error) {
	request := &dto.LoginRequestDTO{}
	if err := r.decodeParams(params, request); err != nil {
		return nil, err
	}

	user, err := r.UserService.AuthenticateUser(ctx, request.Email, request.Password)
	if err != nil {
		return nil, err
	}

	return r.authResponse(user)
}

func (r *Route) saveBook(ctx context.Context, params json.RawMessage) (interface{}, error) {
	request := &dto.SaveBookRequestDTO{}
	if err := r.decodeParams(params, request); err != nil {
		return nil, err
	}

	// The userId is taken from the request, not the token identity,
	// matching the documented API contract.
	user, err := r.UserService.SaveBook(ctx, request.UserID, request.Input.ToModel())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFound(ErrUserNotFound)
	}
	return dto.UserResponseDTO{User: dto.FromUser(user)}, nil
}

func (r *Route) removeBook(ctx context.Context, params json.RawMessage) (interface{}, error) {
	request := &dto.RemoveBookRequestDTO{}
	if err := r.decodeParams(params, request); err != nil {
		return nil, err
	}

	user, err := r.UserService.RemoveBook(ctx, request.UserID, request.BookID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFound(ErrUserNotFound)
	}
	return dto.UserResponseDTO{User: dto.FromUser(user)}, nil
}

func (r *Route) searchBooks(ctx context.Context, params json.RawMessage) (interface{}, error) {
	request := &dto.SearchBooksRequestDTO{}
	if err := r.decodeParams(params, request); err != nil {
		return nil, err
	}

	books, err := r.Catalog.Search(ctx, request.Query)
	if err != nil {
		return nil, err
	}
	return dto.BooksResponseDTO{Books: books}, nil
}

// decodeParams unmarshals the operation payload and applies struct
// validation. Failures surface as validation errors.
func (r *Route) decodeParams(params json.RawMessage, target interface{}) error {
	if len(params) == 0 {
		return apperror.NewValidation("params", ErrInvalidRequestBody)
	}
	if err := json.Unmarshal(params, target); err != nil {
		return apperror.NewValidation("params", err.Error())
	}
	if err := r.validator.Struct(target); err != nil {
		if errs, ok := err.(structValidator.ValidationErrors); ok && len(errs) > 0 {
			return apperror.NewValidation(errs[0].Field(), errs[0].Tag())
		}
		return apperror.NewValidation("", err.Error())
	}
	return nil
}

// authResponse issues a fresh session token for the user and returns the
// {token, user} pair.
func (r *Route) authResponse(user *models.User) (interface{}, error) {
	token, err := auth.CreateToken(user.Username, user.Email, user.ID, r.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToGenerateToken, err)
	}

	return dto.AuthResponseDTO{Token: token, User: dto.FromUser(user)}, nil
}

func (r *Route) writeError(w http.ResponseWriter, operation string, err error) {
	kind, tagged := apperror.KindOf(err)

	status := http.StatusInternalServerError
	kindLabel := "internal"
	if tagged {
		kindLabel = kind.String()
		switch kind {
		case apperror.Validation:
			status = http.StatusBadRequest
		case apperror.Authentication:
			status = http.StatusUnauthorized
		case apperror.NotFound:
			status = http.StatusNotFound
		}
	}

	if r.Metrics != nil {
		r.Metrics.IncCounterVec(APIErrorsTotal, operation, kindLabel)
	}
	r.Logger.Warn("Operation failed", "operation", operation, "kind", kindLabel, "error", err)

	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	response := dto.ErrorResponse{Error: err.Error(), Message: kindLabel}
	_ = json.NewEncoder(w).Encode(response)
}

// errorResponse writes the transport-level error envelope.
func (r *Route) errorResponse(w http.ResponseWriter, err error, message string) {
	jsonResponse := dto.ErrorResponse{
		Error:   err.Error(),
		Message: message,
	}
	_ = json.NewEncoder(w).Encode(jsonResponse)
}
