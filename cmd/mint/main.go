package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zkc-labs/light-nft-repro/pkg/common"
	"github.com/zkc-labs/light-nft-repro/pkg/nft"
	"github.com/zkc-labs/light-nft-repro/pkg/photon"
	"github.com/zkc-labs/light-nft-repro/pkg/solana"
)

var (
	cmd = cobra.Command{
		Use:   "mint",
		Short: "Mint a compressed NFT through the reproducer program",
		RunE:  run,
	}

	keypairPath string
	name        string
	symbol      string
	uri         string
	airdrop     bool
)

func init() {
	cmd.Flags().StringVarP(&keypairPath, "keypair", "k", "", "Path to the payer keypair file (Solana CLI JSON format)")
	cmd.Flags().StringVar(&name, "name", "TestNFT", "NFT name (max 32 bytes)")
	cmd.Flags().StringVar(&symbol, "symbol", "T", "NFT symbol (max 10 bytes)")
	cmd.Flags().StringVar(&uri, "uri", "https://x", "NFT metadata URI")
	cmd.Flags().BoolVar(&airdrop, "airdrop", false, "Request a devnet airdrop when the payer balance is too low")

	_ = cmd.MarkFlagRequired("keypair")
}

func run(_ *cobra.Command, _ []string) error {
	conf, err := nft.LoadConfig()
	if err != nil {
		return err
	}

	payer, err := common.NewAccountFromKeypairFile(keypairPath)
	if err != nil {
		return errors.Wrap(err, "error loading payer keypair")
	}

	photonClient, err := photon.NewClient(conf.PhotonEndpoint, conf.PhotonApiKey)
	if err != nil {
		return err
	}

	minter := nft.NewMinter(
		conf,
		solana.New(conf.SolanaRpcEndpoint),
		photonClient,
		nft.NewJournal(),
	)

	if airdrop {
		if err := minter.EnsureFunded(payer); err != nil {
			return err
		}
	}

	result := minter.Mint(payer, name, symbol, uri)
	if !result.Success {
		for _, line := range result.ProgramLogs {
			logrus.Info(line)
		}
		return errors.New(result.Err)
	}

	logrus.WithField("signature", result.Signature).Info("mint confirmed")
	return nil
}

func main() {
	cobra.CheckErr(cmd.Execute())
}
