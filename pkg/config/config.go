package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	Services ServicesConfig
	Session  SessionConfig
	Stub     StubConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// ServicesConfig bases de los dos servicios del backend. El cliente nunca
// decide la base inspeccionando la URL: cada operación declara su destino.
type ServicesConfig struct {
	PizzaServiceURL string // auth, usuarios, menú, pedidos, franquicias
	PizzaFactoryURL string // verificación de pedidos y docs de la fábrica
	TimeoutSeconds  int
}

// SessionConfig persistencia local del bearer token (el análogo de
// localStorage del navegador).
type SessionConfig struct {
	TokenPath string // archivo donde se espeja el token; "" = valor por defecto
}

// StubConfig configuración del backend stub local (desarrollo y tests).
type StubConfig struct {
	Host      string
	Port      int
	JWTSecret string
}

// Addr devuelve la dirección de escucha (host:port).
func (c StubConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// DefaultTokenPath ruta por defecto del token persistido: el directorio de
// configuración del usuario, imitando el localStorage del navegador.
func DefaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "pizzeria", "token")
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, PIZZA_SERVICE_URL, PIZZA_FACTORY_URL, TOKEN_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "pizzeria-client"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Services: ServicesConfig{
			PizzaServiceURL: getString(v, "PIZZA_SERVICE_URL", "http://localhost:3000"),
			PizzaFactoryURL: getString(v, "PIZZA_FACTORY_URL", "https://pizza-factory.cs329.click"),
			TimeoutSeconds:  getInt(v, "HTTP_TIMEOUT_SECONDS", 30),
		},
		Session: SessionConfig{
			TokenPath: getString(v, "TOKEN_PATH", DefaultTokenPath()),
		},
		Stub: StubConfig{
			Host:      getString(v, "STUB_HOST", "127.0.0.1"),
			Port:      getInt(v, "STUB_PORT", 3000),
			JWTSecret: getString(v, "STUB_JWT_SECRET", "stub-secret"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
