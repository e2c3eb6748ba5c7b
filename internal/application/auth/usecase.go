package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/application/usecase"
	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/repository"
	"github.com/jhoicas/Facturacion-GST/pkg/jwt"
	"github.com/jhoicas/Facturacion-GST/pkg/logger"
)

// JWTConfig firma y vigencia de los tokens de sesión.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AuthUseCase registro de usuarios y apertura de sesión.
type AuthUseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	jwtCfg    JWTConfig
	log       *logger.Logger
	now       func() time.Time
	cost      int
}

// Option ajusta el caso de uso (tests).
type Option func(*AuthUseCase)

// WithClock fija el reloj usado para fechas de alta y de último acceso.
func WithClock(now func() time.Time) Option {
	return func(uc *AuthUseCase) { uc.now = now }
}

// WithBcryptCost cambia el costo de bcrypt; los tests usan bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(uc *AuthUseCase) { uc.cost = cost }
}

func NewAuthUseCase(users repository.UserRepository, companies repository.CompanyRepository, jwtCfg JWTConfig, log *logger.Logger, opts ...Option) *AuthUseCase {
	uc := &AuthUseCase{
		users:     users,
		companies: companies,
		jwtCfg:    jwtCfg,
		log:       log,
		now:       time.Now,
		cost:      bcrypt.DefaultCost,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register alta pública de un usuario activo en una empresa existente.
// El primer usuario de la empresa queda como admin. Después solo se admite el rol sales:
// pedir otro rol responde ErrForbidden y el alta queda en manos de un admin (CreateUser).
// ErrEmailAlreadyExists si el email ya está tomado; ErrNotFound si la empresa no existe.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Role != "" && !entity.IsValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	company, err := uc.company(in.CompanyID)
	if err != nil {
		return nil, err
	}
	members, err := uc.users.ListByCompany(company.ID, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("usuarios de la empresa: %w", err)
	}

	role := entity.RoleSales
	switch {
	case len(members) == 0:
		role = entity.RoleAdmin
	case in.Role != "" && in.Role != entity.RoleSales:
		uc.log.Warn().Str("company_id", company.ID).Str("role", in.Role).Msg("auth: registro público con rol no permitido")
		return nil, fmt.Errorf("%w: el rol %q lo asigna un administrador", domain.ErrForbidden, in.Role)
	}
	return uc.create(company, in.Email, in.Password, in.Name, role)
}

// CreateUser alta de un usuario con cualquier rol. La ruta exige sesión admin de companyID.
func (uc *AuthUseCase) CreateUser(companyID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.IsValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	company, err := uc.company(companyID)
	if err != nil {
		return nil, err
	}
	return uc.create(company, in.Email, in.Password, in.Name, in.Role)
}

func (uc *AuthUseCase) company(id string) (*entity.Company, error) {
	company, err := uc.companies.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func (uc *AuthUseCase) create(company *entity.Company, rawEmail, password, rawName, role string) (*dto.UserResponse, error) {
	email := normalizeEmail(rawEmail)
	existing, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	name := strings.TrimSpace(rawName)
	if name == "" {
		name = email
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", company.ID).Str("user_id", user.ID).Str("role", role).Msg("auth: usuario creado")
	return usecase.ToUserResponse(user), nil
}

// Login valida credenciales y emite el token de la sesión de venta (usuario, empresa y rol).
// Email desconocido y password incorrecta responden igual: ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserActive {
		return nil, domain.ErrForbidden
	}

	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.TTL)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := uc.users.TouchLogin(ctx, user.ID, now); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("auth: no se registró el último acceso")
	} else {
		user.LastLoginAt = &now
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      *usecase.ToUserResponse(user),
	}, nil
}
