package cmd

import (
	"errors"
	"fmt"

	"bunshack-api/config"
	"bunshack-api/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var revokeAdmin bool

// promote is the only way to grant admin rights; registration never does.
var promoteCmd = &cobra.Command{
	Use:   "promote <email>",
	Short: "Grant (or with --revoke, remove) admin rights for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := config.OpenDB(cfg)
		if err != nil {
			return err
		}

		user, err := store.NewUserStore(db).SetAdmin(cmd.Context(), args[0], !revokeAdmin)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no user with email %s", args[0])
			}
			return err
		}
		log.WithFields(logrus.Fields{
			"email":    user.Email,
			"is_admin": user.IsAdmin,
		}).Info("admin flag updated")
		return nil
	},
}

func init() {
	promoteCmd.Flags().BoolVar(&revokeAdmin, "revoke", false, "remove admin rights instead of granting them")
}
