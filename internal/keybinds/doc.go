/*
Package keybinds maps key presses to editor actions.

Bindings live in contexts. A key is looked up in the active context first
and then in the global one, so a context binding shadows a global binding.

Users can override the defaults in keybinds.jsonc under the config
directory. Comments and trailing commas are allowed:

	{
	  "version": "1.0",
	  "contexts": {
	    // commit with ctrl+w instead of s
	    "manage": { "commit": "ctrl+w" },
	    "inspect": { "close": "esc,q" },
	  }
	}

An action listed for a context loses its default keys there. Use "space"
for the space bar.
*/
package keybinds
