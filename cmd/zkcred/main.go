package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"

	"github.com/credo-id/zkcred/pkg/proof"
	"github.com/credo-id/zkcred/pkg/zkcred"
)

// candidateSet is the YAML shape of a credential list statement.
type candidateSet struct {
	Candidates []string `yaml:"candidates"`
}

func main() {
	suite := zkcred.NewSuite()

	app := &cli.App{
		Name:  "zkcred",
		Usage: "Generate and verify zero-knowledge credential proofs",
		Commands: []*cli.Command{
			{
				Name:  "prove",
				Usage: "Generate a proof from a witness and a public statement",
				Subcommands: []*cli.Command{
					{
						Name:  "age",
						Usage: "Prove age is at least a threshold without revealing the birth year",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "birth-year", Aliases: []string{"b"}, Required: true},
							&cli.IntFlag{Name: "min-age", Aliases: []string{"m"}, Value: 18},
							&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file, defaults to stdout"},
						},
						Action: func(c *cli.Context) error {
							p, err := suite.ProveAgeAtLeast(c.Int("birth-year"), c.Int("min-age"))
							if err != nil {
								return errors.Wrap(err, "generating age proof")
							}
							return writeProof(c.String("out"), p)
						},
					},
					{
						Name:  "membership",
						Usage: "Prove a credential identifier belongs to a candidate list",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "value", Aliases: []string{"v"}, Required: true},
							&cli.StringFlag{
								Name:    "set",
								Aliases: []string{"s"},
								Value:   "candidates.yaml",
								EnvVars: []string{"ZKCRED_SET"},
								Usage:   "YAML file with the ordered candidate list",
							},
							&cli.StringFlag{Name: "out", Aliases: []string{"o"}},
						},
						Action: func(c *cli.Context) error {
							set, err := loadCandidates(c.String("set"))
							if err != nil {
								return err
							}
							p, err := suite.ProveCredentialMembership([]byte(c.String("value")), set)
							if err != nil {
								return errors.Wrap(err, "generating membership proof")
							}
							return writeProof(c.String("out"), p)
						},
					},
				},
			},
			{
				Name:  "verify",
				Usage: "Verify a previously generated proof file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true},
				},
				Action: func(c *cli.Context) error {
					data, err := os.ReadFile(c.String("in"))
					if err != nil {
						return errors.Wrap(err, "reading proof file")
					}
					var p proof.Proof
					if err := json.Unmarshal(data, &p); err != nil {
						return errors.Wrap(err, "decoding proof file")
					}
					if !suite.Verify(&p) {
						log.WithField("type", p.Type()).Error("proof rejected")
						return cli.Exit("proof rejected", 1)
					}
					log.WithFields(log.Fields{
						"type":      p.Type(),
						"createdAt": p.CreatedAt(),
					}).Info("proof verified")
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

func loadCandidates(path string) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading candidate set %q", path)
	}
	var set candidateSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, errors.Wrapf(err, "parsing candidate set %q", path)
	}
	out := make([][]byte, len(set.Candidates))
	for i, c := range set.Candidates {
		out[i] = []byte(c)
	}
	return out, nil
}

func writeProof(path string, p *proof.Proof) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding proof")
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "writing proof file")
	}
	log.WithField("path", path).Info("proof written")
	return nil
}
