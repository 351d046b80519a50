// Command tokenact sends token actions (transfers, approvals, dispersals,
// migrations) against a chain described by a YAML config.
package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/branched-services/go-tokenact"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "Path to the chain config YAML",
		Value: "tokenact.yml",
	}
	keyFlag = cli.StringFlag{
		Name:   "key, k",
		Usage:  "Hex-encoded sender private key",
		EnvVar: "TOKENACT_KEY",
	}
	tokenFlag = cli.StringFlag{
		Name:  "token",
		Usage: "Token contract address",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "Recipient (or spender) address",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "Amount in base token units",
	}
	recipientsFlag = cli.StringFlag{
		Name:  "recipients",
		Usage: "Comma-separated recipient addresses",
	}
	valuesFlag = cli.StringFlag{
		Name:  "values",
		Usage: "Comma-separated values in base units, paired with --recipients",
	}
	idsFlag = cli.StringFlag{
		Name:  "ids",
		Usage: "Comma-separated token ids",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose, v",
		Usage: "Log transaction lifecycle to stderr",
	}
)

func main() {
	ctl := cli.NewApp()
	ctl.Name = "tokenact"
	ctl.Usage = "token actions over an Ethereum RPC endpoint"
	ctl.Flags = []cli.Flag{configFlag, keyFlag, verboseFlag}
	ctl.Commands = []cli.Command{
		{
			Name:   "transfer",
			Usage:  "Transfer ERC-20 tokens",
			Flags:  []cli.Flag{tokenFlag, toFlag, amountFlag},
			Action: transferToken,
		},
		{
			Name:   "approve",
			Usage:  "Approve an ERC-20 spender",
			Flags:  []cli.Flag{tokenFlag, toFlag, amountFlag},
			Action: approveToken,
		},
		{
			Name:   "disperse-ether",
			Usage:  "Batch-send ETH via the configured Disperse contract",
			Flags:  []cli.Flag{recipientsFlag, valuesFlag},
			Action: disperseEther,
		},
		{
			Name:   "disperse-token",
			Usage:  "Batch-send ERC-20 tokens via the configured Disperse contract",
			Flags:  []cli.Flag{tokenFlag, recipientsFlag, valuesFlag},
			Action: disperseToken,
		},
		{
			Name:   "migrate",
			Usage:  "Migrate legacy ERC-1155 holdings via the configured migration contract",
			Flags:  []cli.Flag{idsFlag},
			Action: migrateTokens,
		},
	}

	if err := ctl.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, dials the backend and builds a dispatcher for the
// key from the global flags.
func setup(c *cli.Context) (*tokenact.Dispatcher, *tokenact.ChainConfig, error) {
	cfg, err := tokenact.LoadConfig(c.GlobalString("config"))
	if err != nil {
		return nil, nil, err
	}

	keyHex := strings.TrimPrefix(c.GlobalString("key"), "0x")
	if keyHex == "" {
		return nil, nil, cli.NewExitError("sender key is required (--key or TOKENACT_KEY)", 1)
	}
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, nil, cli.NewExitError(fmt.Errorf("invalid key: %w", err), 1)
	}

	backend, err := ethclient.Dial(cfg.RPCEndpoint)
	if err != nil {
		return nil, nil, cli.NewExitError(fmt.Errorf("dial %s: %w", cfg.RPCEndpoint, err), 1)
	}

	connector := tokenact.NewKeyConnector(key, backend).WithChainID(big.NewInt(cfg.ChainID))
	provider, err := tokenact.ResolveProvider(context.Background(), connector)
	if err != nil {
		return nil, nil, cli.NewExitError(err, 1)
	}

	opts := cfg.DispatcherOptions()
	if c.GlobalBool("verbose") {
		log, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, cli.NewExitError(err, 1)
		}
		opts = append(opts, tokenact.WithLogger(log))
	}

	d, err := tokenact.NewDispatcher(provider, opts...)
	if err != nil {
		return nil, nil, cli.NewExitError(err, 1)
	}
	return d, cfg, nil
}

func transferToken(c *cli.Context) error {
	d, _, err := setup(c)
	if err != nil {
		return err
	}
	token, err := parseAddress(c.String("token"), "--token")
	if err != nil {
		return err
	}
	to, err := parseAddress(c.String("to"), "--to")
	if err != nil {
		return err
	}
	amount, err := parseAmount(c.String("amount"), "--amount")
	if err != nil {
		return err
	}

	res, err := tokenact.NewERC20(d, token).Transfer(context.Background(), to, amount)
	return report(res, err)
}

func approveToken(c *cli.Context) error {
	d, _, err := setup(c)
	if err != nil {
		return err
	}
	token, err := parseAddress(c.String("token"), "--token")
	if err != nil {
		return err
	}
	spender, err := parseAddress(c.String("to"), "--to")
	if err != nil {
		return err
	}
	amount, err := parseAmount(c.String("amount"), "--amount")
	if err != nil {
		return err
	}

	res, err := tokenact.NewERC20(d, token).Approve(context.Background(), spender, amount)
	return report(res, err)
}

func disperseEther(c *cli.Context) error {
	d, cfg, err := setup(c)
	if err != nil {
		return err
	}
	contract, err := cfg.DisperseAddress()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	recipients, err := parseAddressList(c.String("recipients"), "--recipients")
	if err != nil {
		return err
	}
	values, err := parseAmountList(c.String("values"), "--values")
	if err != nil {
		return err
	}

	res, err := tokenact.NewDisperse(d, contract).DisperseEther(context.Background(), recipients, values)
	return report(res, err)
}

func disperseToken(c *cli.Context) error {
	d, cfg, err := setup(c)
	if err != nil {
		return err
	}
	contract, err := cfg.DisperseAddress()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	token, err := parseAddress(c.String("token"), "--token")
	if err != nil {
		return err
	}
	recipients, err := parseAddressList(c.String("recipients"), "--recipients")
	if err != nil {
		return err
	}
	values, err := parseAmountList(c.String("values"), "--values")
	if err != nil {
		return err
	}

	res, err := tokenact.NewDisperse(d, contract).DisperseToken(context.Background(), token, recipients, values)
	return report(res, err)
}

func migrateTokens(c *cli.Context) error {
	d, cfg, err := setup(c)
	if err != nil {
		return err
	}
	migration, err := cfg.MigrationAddress()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	legacy, err := cfg.LegacyCollectionAddress()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	ids, err := parseAmountList(c.String("ids"), "--ids")
	if err != nil {
		return err
	}

	res, err := tokenact.NewMigrator(d, migration, legacy).Migrate(context.Background(), ids)
	return report(res, err)
}

// report prints the outcome and maps failures to exit errors.
func report(res *tokenact.Result, err error) error {
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if !res.Success {
		return cli.NewExitError(res.Err, 1)
	}
	fmt.Printf("confirmed: %s (block %d, gas %d)\n",
		res.TxHash.Hex(), res.Receipt.BlockNumber.Uint64(), res.Receipt.GasUsed)
	return nil
}

func parseAddress(s, flag string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, cli.NewExitError(fmt.Sprintf("%s: invalid address %q", flag, s), 1)
	}
	return common.HexToAddress(s), nil
}

func parseAddressList(s, flag string) ([]common.Address, error) {
	if s == "" {
		return nil, cli.NewExitError(flag+" is required", 1)
	}
	parts := strings.Split(s, ",")
	addrs := make([]common.Address, len(parts))
	for i, part := range parts {
		addr, err := parseAddress(strings.TrimSpace(part), flag)
		if err != nil {
			return nil, err
		}
		addrs[i] = addr
	}
	return addrs, nil
}

func parseAmount(s, flag string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, cli.NewExitError(fmt.Sprintf("%s: invalid amount %q", flag, s), 1)
	}
	return v, nil
}

func parseAmountList(s, flag string) ([]*big.Int, error) {
	if s == "" {
		return nil, cli.NewExitError(flag+" is required", 1)
	}
	parts := strings.Split(s, ",")
	values := make([]*big.Int, len(parts))
	for i, part := range parts {
		v, err := parseAmount(part, flag)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
