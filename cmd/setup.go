package main

import (
	"context"
	"fmt"
	"os"

	"github.com/love-yuri/qq-music-api/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the embedded config template to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	if r.configPath == "" {
		return fmt.Errorf("%w: config path is empty", shared.ErrMissingArgument)
	}

	if cmd.Bool("force") {
		if err := shared.SaveConfig(r.configPath, shared.DefaultConfig()); err != nil {
			return err
		}
	} else if err := shared.CreateConfigFile(r.configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", r.configPath)
	r.writePlain("✓ Config written to %s\n", r.configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Copy any y.qq.com request as cURL from the browser DevTools\n")
	r.writePlain("2. Run 'qqm setup cookie --curl-file <file>' to store the session\n")
	return nil
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	r.writePlain("✓ Database ready at %s\n", r.config.Database.Path)
	return nil
}

// SetupCookie extracts the y.qq.com cookie from a cURL command and saves it with the account
// number to the config file.
//
// The uin is read from the cookie (uin, qqmusic_uin, p_uin or wxuin) unless --uin is given.
func (r *Runner) SetupCookie(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	var req *shared.CurlRequest
	var err error

	if curlFile != "" {
		req, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		req, err = shared.ParseCurlCommand(curlCmd)
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	if req.Cookie == "" {
		return fmt.Errorf("%w: no cookie found in cURL command", shared.ErrInvalidInput)
	}

	uin := cmd.String("uin")
	if uin == "" {
		uin = shared.UINFromCookie(req.Cookie)
	}
	if uin == "" {
		return fmt.Errorf("%w: cookie has no uin, pass --uin", shared.ErrMissingArgument)
	}

	// Start from the file on disk so environment overrides are not persisted.
	config := shared.DefaultConfig()
	if _, err := os.Stat(r.configPath); err == nil {
		if config, err = shared.LoadConfig(r.configPath); err != nil {
			return err
		}
	}

	config.Credentials.QQ.UIN = uin
	config.Credentials.QQ.Cookie = req.Cookie

	if err := shared.SaveConfig(r.configPath, config); err != nil {
		return err
	}

	r.config.Credentials.QQ = config.Credentials.QQ
	r.qq = nil
	r.engine = nil

	r.logger.Info("credentials saved", "uin", uin, "path", r.configPath)
	r.writePlain("✓ Saved cookie for uin %s (%d keys) to %s\n", uin, len(shared.ParseCookie(req.Cookie)), r.configPath)
	r.writePlain("Run 'qqm playlist list' to check the session\n")
	return nil
}
