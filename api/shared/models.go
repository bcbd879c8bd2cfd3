/* models.go
 * This file contains the structs that are shared between sub packages
 */

package shared

// User is the verified identity of a caller. It is extracted from the auth
// token by the web layer before any callable operation runs.
type User struct {
	UID  string
	Name string
}
