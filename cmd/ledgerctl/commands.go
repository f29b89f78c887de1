package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-ledger/internal/application/catalog"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-ledger/pkg/config"
	"github.com/jhoicas/almacen-ledger/pkg/jwt"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

var commands = []subcommands.Command{
	&migrateCmd{},
	&seedCmd{},
	&stockCmd{},
	&tokenCmd{},
}

// connect carga la configuración y abre el pool; el llamador cierra el pool.
func connect(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cfg, pool, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "aplica el esquema de base de datos" }
func (*migrateCmd) Usage() string {
	return `ledgerctl migrate

  Crea las tablas e índices del ledger si no existen. Es idempotente.
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, pool, err := connect(ctx)
	if err != nil {
		return fail(err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return fail(err)
	}
	fmt.Println("esquema aplicado")
	return subcommands.ExitSuccess
}

type seedCmd struct {
	file    string
	migrate bool
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "carga productos, terceros y ubicaciones desde JSON" }
func (*seedCmd) Usage() string {
	return `ledgerctl seed -file <catalogo.json> [-migrate]

  Inserta el catálogo en una sola transacción: si un registro falla no se carga nada.
  Las ubicaciones padre deben aparecer antes que sus hijas.
`
}

func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Archivo JSON con products, partners y locations.")
	f.BoolVar(&c.migrate, "migrate", false, "Aplica el esquema antes de cargar.")
}

func (c *seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "falta -file")
		return subcommands.ExitUsageError
	}
	seed, err := catalog.ReadFile(c.file)
	if err != nil {
		return fail(err)
	}
	_, pool, err := connect(ctx)
	if err != nil {
		return fail(err)
	}
	defer pool.Close()

	if c.migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fail(err)
		}
	}
	counts, err := catalog.Load(ctx, postgres.NewTxRunner(pool), seed)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("cargados: %d productos, %d terceros, %d ubicaciones\n", counts.Products, counts.Partners, counts.Locations)
	return subcommands.ExitSuccess
}

type stockCmd struct {
	product  string
	location string
}

func (*stockCmd) Name() string     { return "stock" }
func (*stockCmd) Synopsis() string { return "lista las cantidades del ledger" }
func (*stockCmd) Usage() string {
	return `ledgerctl stock (-product <id> | -location <id>)

  Imprime en JSON las claves con cantidad distinta de cero.
`
}

func (c *stockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "ID de producto.")
	f.StringVar(&c.location, "location", "", "ID de bin.")
}

func (c *stockCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.product == "") == (c.location == "") {
		fmt.Fprintln(os.Stderr, "indique exactamente uno de -product o -location")
		return subcommands.ExitUsageError
	}
	_, pool, err := connect(ctx)
	if err != nil {
		return fail(err)
	}
	defer pool.Close()

	uc := inventory.NewStockUseCase(postgres.NewTxRunner(pool), inventory.NewLedger(logger.Nop()), logger.Nop())
	var entries []*entity.StockEntry
	if c.product != "" {
		entries, err = uc.ListByProduct(ctx, c.product)
	} else {
		entries, err = uc.ListByLocation(ctx, c.location)
	}
	if err != nil {
		return fail(err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type tokenCmd struct {
	user string
	role string
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "emite un JWT firmado con JWT_SECRET" }
func (*tokenCmd) Usage() string {
	return `ledgerctl token -user <id> [-role admin|supervisor|bodeguero]

  El usuario queda como actor en la auditoría de las operaciones hechas con el token.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "ID del usuario.")
	f.StringVar(&c.role, "role", jwt.RoleOperator, "Rol del usuario.")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user == "" {
		fmt.Fprintln(os.Stderr, "falta -user")
		return subcommands.ExitUsageError
	}
	switch c.role {
	case jwt.RoleAdmin, jwt.RoleSupervisor, jwt.RoleOperator:
	default:
		fmt.Fprintf(os.Stderr, "rol %q desconocido\n", c.role)
		return subcommands.ExitUsageError
	}
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	token, err := jwt.Generate(cfg.JWT.Secret, c.user, c.role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		return fail(err)
	}
	fmt.Println(token)
	return subcommands.ExitSuccess
}
