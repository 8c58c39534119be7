package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zkc-labs/light-nft-repro/pkg/common"
	"github.com/zkc-labs/light-nft-repro/pkg/nft"
	"github.com/zkc-labs/light-nft-repro/pkg/registrar"
	"github.com/zkc-labs/light-nft-repro/pkg/solana"
)

var (
	cmd = cobra.Command{
		Use:   "register",
		Short: "Register the reproducer program with the account-compression tree group",
		RunE:  run,
	}

	payerKeypairPath   string
	programKeypairPath string
)

func init() {
	cmd.Flags().StringVarP(&payerKeypairPath, "keypair", "k", "", "Path to the payer keypair file (Solana CLI JSON format)")
	cmd.Flags().StringVarP(&programKeypairPath, "program-keypair", "p", "", "Path to the program keypair file")

	_ = cmd.MarkFlagRequired("keypair")
	_ = cmd.MarkFlagRequired("program-keypair")
}

func run(_ *cobra.Command, _ []string) error {
	conf, err := nft.LoadConfig()
	if err != nil {
		return err
	}

	payer, err := common.NewAccountFromKeypairFile(payerKeypairPath)
	if err != nil {
		return errors.Wrap(err, "error loading payer keypair")
	}

	program, err := common.NewAccountFromKeypairFile(programKeypairPath)
	if err != nil {
		return errors.Wrap(err, "error loading program keypair")
	}

	status, err := registrar.New(solana.New(conf.SolanaRpcEndpoint)).Register(payer, program)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"program": program.PublicKey().ToBase58(),
		"status":  status.String(),
	}).Info("registration complete")

	return nil
}

func main() {
	cobra.CheckErr(cmd.Execute())
}
