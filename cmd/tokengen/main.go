// tokengen genera credenciales del operador sin levantar la API.
//
// Uso:
//
//	go run ./cmd/tokengen -hash -password secreta       imprime el hash bcrypt para AUTH_PASSWORD_HASH
//	go run ./cmd/tokengen -subject operador             emite un JWT con la config del entorno
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/almacen-api/pkg/config"
	pkgjwt "github.com/tu-usuario/almacen-api/pkg/jwt"
)

func main() {
	hashMode := flag.Bool("hash", false, "generar hash bcrypt en lugar de un token")
	password := flag.String("password", "", "contraseña a hashear (con -hash)")
	subject := flag.String("subject", "operador", "sujeto del token")
	flag.Parse()

	if *hashMode {
		if *password == "" {
			fmt.Fprintln(os.Stderr, "falta -password")
			os.Exit(1)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generar hash: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(hash))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET sin configurar")
		os.Exit(1)
	}

	token, err := pkgjwt.Generate(cfg.Auth.JWTSecret, *subject, cfg.Auth.Issuer, cfg.Auth.ExpMinutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "emitir token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
