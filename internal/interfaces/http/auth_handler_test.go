package http_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/domain"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	apphttp "github.com/jhoicas/Facturacion-GST/internal/interfaces/http"
)

// stubAuth acepta el registro público solo con rol sales o vacío, como el caso de uso.
type stubAuth struct {
	created []string
}

func (s *stubAuth) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Role != "" && in.Role != entity.RoleSales {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrForbidden, in.Role)
	}
	s.created = append(s.created, in.Email)
	return &dto.UserResponse{ID: "u-1", Email: in.Email, Role: entity.RoleSales}, nil
}

func (s *stubAuth) CreateUser(companyID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	s.created = append(s.created, companyID+"|"+in.Email+"|"+in.Role)
	return &dto.UserResponse{ID: "u-2", CompanyID: companyID, Email: in.Email, Role: in.Role}, nil
}

func (s *stubAuth) Login(context.Context, dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, domain.ErrUnauthorized
}

func buildAuthApp(svc *stubAuth) *fiber.App {
	h := apphttp.NewAuthHandler(svc)
	app := fiber.New()
	app.Post("/auth/register", h.Register)
	company := app.Group("/companies/:companyId", apphttp.AuthMiddleware(testJWTSecret, testIssuer), apphttp.RequireCompany())
	company.Post("/users", apphttp.RequireRole(entity.RoleAdmin), h.CreateUser)
	return app
}

func TestAuthHandler_RegistroAnonimoComoAdmin_Retorna403(t *testing.T) {
	svc := &stubAuth{}
	app := buildAuthApp(svc)

	resp := send(t, app, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email: "intruso@example.com", Password: "clave-segura", CompanyID: testCompanyID, Role: entity.RoleAdmin,
	}, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ROLE_NOT_ALLOWED", decodeError(t, resp).Code)
	assert.Empty(t, svc.created)
}

func TestAuthHandler_RegistroValidaCampos(t *testing.T) {
	app := buildAuthApp(&stubAuth{})

	resp := send(t, app, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email: "no-es-email", Password: "clave-segura", CompanyID: testCompanyID,
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email: "a@example.com", Password: "corta", CompanyID: testCompanyID,
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_CreateUser(t *testing.T) {
	body := dto.CreateUserRequest{Email: "contador@example.com", Password: "clave-segura", Role: entity.RoleAccounts}

	t.Run("admin de la empresa", func(t *testing.T) {
		svc := &stubAuth{}
		resp := send(t, buildAuthApp(svc), http.MethodPost, "/companies/"+testCompanyID+"/users", body, "admin")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, []string{testCompanyID + "|contador@example.com|accounts"}, svc.created)
	})

	t.Run("vendedor no puede", func(t *testing.T) {
		svc := &stubAuth{}
		resp := send(t, buildAuthApp(svc), http.MethodPost, "/companies/"+testCompanyID+"/users", body, "sales")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Empty(t, svc.created)
	})

	t.Run("admin de otra empresa", func(t *testing.T) {
		svc := &stubAuth{}
		resp := send(t, buildAuthApp(svc), http.MethodPost, "/companies/otra-empresa/users", body, "admin")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Empty(t, svc.created)
	})

	t.Run("sin rol", func(t *testing.T) {
		svc := &stubAuth{}
		resp := send(t, buildAuthApp(svc), http.MethodPost, "/companies/"+testCompanyID+"/users",
			dto.CreateUserRequest{Email: "x@example.com", Password: "clave-segura"}, "admin")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Empty(t, svc.created)
	})
}
