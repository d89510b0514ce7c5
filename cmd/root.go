package cmd

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/utils"
	"github.com/atria-network/atria-agent/agent/vcx/indy"
	"github.com/atria-network/atria-agent/cmds/agency"
	"github.com/atria-network/atria-agent/enclave"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ATRIA"

// agencyImpl is the production agency SDK every command runs against.
var agencyImpl = indy.New()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: utils.Version,
	Use:     "atria-agent",
	Short:   "Atria credential agent cli tool",
	Long: `
Atria credential agent cli tool
	`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		agency.ParseLoggingArgs(rootFlags.logging)
		handleViperFlags(cmd)
	},
}

// Execute root
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// RootFlags are the common flags
type RootFlags struct {
	cfgFile    string
	dryRun     bool
	logging    string
	dataPath   string
	enclaveKey string
}

var rootFlags = RootFlags{}

var rootEnvs = map[string]string{
	"config":      "CONFIG",
	"logging":     "LOGGING",
	"dry-run":     "DRY_RUN",
	"data-path":   "DATA_PATH",
	"enclave-key": "ENCLAVE_KEY",
}

func init() {
	defer err2.Catch(func(err error) {
		log.Println(err)
	})

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.cfgFile, "config", "", flagInfo("configuration file", "", rootEnvs["config"]))
	flags.StringVar(&rootFlags.logging, "logging", "-logtostderr=true -v=2", flagInfo("logging startup arguments", "", rootEnvs["logging"]))
	flags.BoolVarP(&rootFlags.dryRun, "dry-run", "n", false, flagInfo("perform a trial run with no changes made", "", rootEnvs["dry-run"]))
	flags.StringVar(&rootFlags.dataPath, "data-path", "", flagInfo("root dir for data files", "", rootEnvs["data-path"]))
	flags.StringVar(&rootFlags.enclaveKey, "enclave-key", "", flagInfo("SHA-256 32 bytes in hex ascii", "", rootEnvs["enclave-key"]))

	try.To(viper.BindPFlag("logging", flags.Lookup("logging")))
	try.To(viper.BindPFlag("dry-run", flags.Lookup("dry-run")))
	try.To(viper.BindPFlag("data-path", flags.Lookup("data-path")))
	try.To(viper.BindPFlag("enclave-key", flags.Lookup("enclave-key")))

	try.To(BindEnvs(rootEnvs, ""))
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	replacer := strings.NewReplacer("-", "_")
	viper.SetEnvKeyReplacer(replacer)
	readConfigFile()
	readBoundRootFlags()
}

func readBoundRootFlags() {
	rootFlags.logging = viper.GetString("logging")
	rootFlags.dryRun = viper.GetBool("dry-run")
	rootFlags.dataPath = viper.GetString("data-path")
	rootFlags.enclaveKey = viper.GetString("enclave-key")
}

func readConfigFile() {
	cfgEnv := os.Getenv(getEnvName("", "config"))
	if rootFlags.cfgFile != "" || cfgEnv != "" {
		printInfo := true
		if rootFlags.cfgFile == "" {
			rootFlags.cfgFile = cfgEnv
			printInfo = false
		}
		viper.SetConfigFile(rootFlags.cfgFile)
		// If a config file is found, read it in.
		if err := viper.ReadInConfig(); err == nil && printInfo {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

// openStores opens the record db and the key enclave for one-shot client
// commands. The matching closeStores is deferred by the caller.
func openStores() (err error) {
	defer err2.Handle(&err, "open stores")

	if rootFlags.dataPath != "" {
		utils.Settings.SetDataPath(rootFlags.dataPath)
	}
	dataDir := utils.Settings.DataFile("")
	try.To(os.MkdirAll(dataDir, 0700))
	try.To(storage.Open(utils.Settings.DataFile("agent.bolt")))
	if rootFlags.enclaveKey != "" {
		storage.InstallCipher(try.To1(hex.DecodeString(rootFlags.enclaveKey)))
	}
	try.To(enclave.Init(dataDir, "enclave", rootFlags.enclaveKey))
	return nil
}

func closeStores() {
	if err := storage.Close(); err != nil {
		glog.Warningln("closing storage:", err)
	}
	enclave.Close()
}

// BindEnvs calls viper.BindEnv with envMap and cmdName which can be empty if
// flag is general.
func BindEnvs(envMap map[string]string, cmdName string) (err error) {
	defer err2.Handle(&err)
	for flagKey, envName := range envMap {
		finalEnvName := getEnvName(cmdName, envName)
		try.To(viper.BindEnv(flagKey, finalEnvName))
	}
	return nil
}

func flagInfo(info, cmdPrefix, envName string) string {
	return info + ", " + getEnvName(cmdPrefix, envName)
}

func getEnvName(cmdName, envName string) string {
	if cmdName == "" {
		return envPrefix + "_" + strings.ToUpper(envName)
	}
	return envPrefix + "_" + strings.ToUpper(cmdName) + "_" + envName
}

func handleViperFlags(cmd *cobra.Command) {
	setRequiredStringFlags(cmd)
	if cmd.HasParent() {
		handleViperFlags(cmd.Parent())
	}
}

func setRequiredStringFlags(cmd *cobra.Command) {
	defer err2.Catch(func(err error) {
		log.Println(err)
	})

	try.To(viper.BindPFlags(cmd.LocalFlags()))
	if cmd.PreRunE != nil {
		try.To(cmd.PreRunE(cmd, nil))
	}
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if viper.GetString(f.Name) != "" {
			try.To(cmd.LocalFlags().Set(f.Name, viper.GetString(f.Name)))
		}
	})
}

// SubCmdNeeded prints the help and error messages because the cmd is abstract.
func SubCmdNeeded(cmd *cobra.Command) {
	fmt.Println("Subcommand needed!")
	_ = cmd.Help()
	os.Exit(1)
}
