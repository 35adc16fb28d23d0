package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostpanel/internal/domain"
	"github.com/ksyq12/vhostpanel/internal/output"
	"github.com/ksyq12/vhostpanel/internal/ssl"
)

var sslEmail string

var sslCmd = &cobra.Command{
	Use:   "ssl",
	Short: "SSL certificate management",
	Long:  `Obtain Let's Encrypt certificates through certbot's Apache plugin.`,
}

var sslInstallCmd = &cobra.Command{
	Use:   "install <domain>",
	Short: "Install an SSL certificate for a domain",
	Long: `Run certbot for one domain. Certbot rewrites the site definition to
serve HTTPS and redirect HTTP to it.

Examples:
  vhostpanel ssl install example.com --email admin@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runSSLInstall,
}

var sslPathsCmd = &cobra.Command{
	Use:   "paths <domain>",
	Short: "Show where certbot stores a domain's certificate",
	Args:  cobra.ExactArgs(1),
	RunE:  runSSLPaths,
}

func init() {
	sslInstallCmd.Flags().StringVarP(&sslEmail, "email", "e", "", "Email address for Let's Encrypt (required)")
	_ = sslInstallCmd.MarkFlagRequired("email")

	sslCmd.AddCommand(sslInstallCmd)
	sslCmd.AddCommand(sslPathsCmd)
	rootCmd.AddCommand(sslCmd)
}

type sslInstallResult struct {
	Success bool   `json:"success"`
	Domain  string `json:"domain"`
	Output  string `json:"output"`
}

func runSSLInstall(cmd *cobra.Command, args []string) error {
	domainName := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	installer, err := newInstaller(cfg)
	if err != nil {
		return err
	}
	if !installer.IsInstalled() {
		output.Warn("%s was not found on PATH", installer.Binary())
	}

	if !jsonOutput {
		output.Info("Requesting certificate for %s...", domainName)
	}
	ok, msg := installer.Install(commandContext(cmd), domainName, sslEmail)

	if jsonOutput {
		if err := output.JSON(sslInstallResult{Success: ok, Domain: domainName, Output: msg}); err != nil {
			return err
		}
	} else {
		output.Print("%s", strings.TrimRight(msg, "\n"))
	}

	if !ok {
		return errors.New("certificate installation failed")
	}
	return nil
}

func runSSLPaths(cmd *cobra.Command, args []string) error {
	if err := domain.Validate(args[0]); err != nil {
		return err
	}

	cert := ssl.GetCertPaths(args[0])
	if jsonOutput {
		return output.JSON(cert)
	}
	output.KeyValue([][2]string{
		{"Certificate", cert.CertPath},
		{"Key", cert.KeyPath},
	})
	return nil
}
